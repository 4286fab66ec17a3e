package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	Llm    *LLM
	Log    *Log
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

// LLM configures the external chat-completion API used by the agent layer.
// Timeout bounds each completion call; Qps/Rpm feed the shared limiter.
type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
	Timeout string `json:"timeout"`
	Qps     int32  `json:"qps"`
	Rpm     int32  `json:"rpm"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

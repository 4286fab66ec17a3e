package server

import (
	"embed"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/ghana-siga/siga-igov/internal/conf"
	"github.com/ghana-siga/siga-igov/internal/domain"
	"github.com/ghana-siga/siga-igov/internal/service"
)

//go:embed assets/*
var assets embed.FS

func NewHTTPServer(c *conf.Server, s *service.SigaService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Http.Addr != "" {
		opts = append(opts, http.Address(c.Http.Addr))
	}
	if c.Http.Timeout != "" {
		if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)
	h := &handlers{svc: s, log: log.NewHelper(logger)}
	h.register(srv)

	// Serve the static dashboard pages.
	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.URL.Path == "/" {
			content, _ := assets.ReadFile("assets/index.html")
			w.Write(content)
			return
		}
	})
	srv.HandleFunc("/procurement", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		content, _ := assets.ReadFile("assets/procurement.html")
		w.Write(content)
	})

	return srv
}

type handlers struct {
	svc *service.SigaService
	log *log.Helper
}

func (h *handlers) register(srv *http.Server) {
	r := srv.Route("/")
	r.GET("/entities", h.listEntities)
	r.POST("/entities", h.resetEntities)
	r.GET("/entities/{id}", h.entityDetail)
	r.GET("/dashboard", h.dashboard)
	r.GET("/agents", h.agentsGet)
	r.POST("/agents", h.agentsPost)
	r.GET("/procurement-dashboard", h.procurementDashboard)
	r.GET("/healthz", h.healthz)
}

// respondError renders the {error: message} body. Kratos-classified
// errors keep their status code; anything else is logged and flattened to a
// generic 500 so internals never leak.
func (h *handlers) respondError(ctx http.Context, err error, fallbackMsg string) error {
	if se := errors.FromError(err); se.Code >= 400 && se.Code < 600 && se.Code != 500 {
		return ctx.JSON(int(se.Code), map[string]string{"error": se.Message})
	}
	h.log.Errorf("%s: %v", fallbackMsg, err)
	return ctx.JSON(nethttp.StatusInternalServerError, map[string]string{"error": fallbackMsg})
}

func (h *handlers) listEntities(ctx http.Context) error {
	entities, err := h.svc.ListEntities(ctx)
	if err != nil {
		return h.respondError(ctx, err, "Failed to fetch entities")
	}
	return ctx.Result(nethttp.StatusOK, entities)
}

func (h *handlers) resetEntities(ctx http.Context) error {
	res, err := h.svc.ResetEntities(ctx)
	if err != nil {
		return h.respondError(ctx, err, "Failed to create Ghana entities")
	}
	return ctx.Result(nethttp.StatusOK, res)
}

func (h *handlers) entityDetail(ctx http.Context) error {
	detail, err := h.svc.EntityDetail(ctx, ctx.Vars().Get("id"))
	if err != nil {
		return h.respondError(ctx, err, "Failed to fetch entity details")
	}
	return ctx.Result(nethttp.StatusOK, detail)
}

func (h *handlers) dashboard(ctx http.Context) error {
	return ctx.Result(nethttp.StatusOK, h.svc.Dashboard(ctx))
}

func (h *handlers) agentsGet(ctx http.Context) error {
	q := ctx.Query()
	switch q.Get("action") {
	case "status":
		res, err := h.svc.AgentStatus(ctx)
		if err != nil {
			return h.respondError(ctx, err, "Failed to get agent status")
		}
		return ctx.Result(nethttp.StatusOK, res)
	case "execute":
		agentType, taskIndex := q.Get("agentType"), q.Get("taskIndex")
		if agentType == "" || taskIndex == "" {
			return ctx.JSON(nethttp.StatusBadRequest, map[string]string{"error": "Missing required parameters"})
		}
		idx, err := strconv.Atoi(taskIndex)
		if err != nil {
			return ctx.JSON(nethttp.StatusBadRequest, map[string]string{"error": "Invalid task index"})
		}
		res, err := h.svc.AgentExecute(ctx, agentType, idx, q.Get("targetEntity"))
		if err != nil {
			return h.respondError(ctx, err, "Failed to execute agent task")
		}
		return ctx.Result(nethttp.StatusOK, res)
	case "insights":
		agentType := q.Get("agentType")
		if agentType == "" {
			return ctx.JSON(nethttp.StatusBadRequest, map[string]string{"error": "Missing agent type parameter"})
		}
		res, err := h.svc.AgentInsights(ctx, agentType)
		if err != nil {
			return h.respondError(ctx, err, "Failed to get agent insights")
		}
		return ctx.Result(nethttp.StatusOK, res)
	case "contributions":
		res, err := h.svc.AgentContributions(ctx)
		if err != nil {
			return h.respondError(ctx, err, "Failed to get agent contributions")
		}
		return ctx.Result(nethttp.StatusOK, res)
	case "tasks":
		return h.agentTasks(ctx)
	default:
		res, err := h.svc.AgentOverview(ctx)
		if err != nil {
			return h.respondError(ctx, err, "Failed to get agent overview")
		}
		return ctx.Result(nethttp.StatusOK, res)
	}
}

func (h *handlers) agentTasks(ctx http.Context) error {
	agentType := ctx.Query().Get("agentType")
	catalogs, err := h.svc.AgentTasks(agentType)
	if err != nil {
		return h.respondError(ctx, err, "Failed to get available tasks")
	}
	if agentType != "" {
		return ctx.Result(nethttp.StatusOK, catalogs[0])
	}
	return ctx.Result(nethttp.StatusOK, map[string]any{"agents": catalogs})
}

type executeRequest struct {
	Action       string `json:"action"`
	AgentType    string `json:"agentType"`
	TaskIndex    int    `json:"taskIndex"`
	TargetEntity string `json:"targetEntity"`
}

func (h *handlers) agentsPost(ctx http.Context) error {
	var req executeRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(nethttp.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if req.Action != "execute" {
		return ctx.JSON(nethttp.StatusBadRequest, map[string]string{"error": "Invalid action"})
	}
	res, err := h.svc.AgentExecute(ctx, req.AgentType, req.TaskIndex, req.TargetEntity)
	if err != nil {
		return h.respondError(ctx, err, "Failed to process request")
	}
	return ctx.Result(nethttp.StatusOK, res)
}

func (h *handlers) procurementDashboard(ctx http.Context) error {
	q := ctx.Query()
	f := domain.ProcurementFilter{
		Category:  q.Get("category"),
		Status:    q.Get("status"),
		RiskLevel: q.Get("riskLevel"),
		EntityID:  q.Get("entityId"),
	}
	if v, err := strconv.ParseFloat(q.Get("minAmount"), 64); err == nil {
		f.MinAmount = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxAmount"), 64); err == nil {
		f.MaxAmount = v
	}
	f.ShowOnlyHighRisk = q.Get("showOnlyHighRisk") == "true"
	return ctx.Result(nethttp.StatusOK, h.svc.ProcurementAnalytics(ctx, f))
}

func (h *handlers) healthz(ctx http.Context) error {
	return ctx.Result(nethttp.StatusOK, map[string]string{"status": "ok"})
}

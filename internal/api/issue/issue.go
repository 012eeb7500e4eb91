package issue

import (
	"net/http"
	"strconv"

	dto "issue_tracker/internal/api/dto/issue"
	"issue_tracker/internal/api/errs"
	"issue_tracker/internal/converter"
	"issue_tracker/internal/service"
	"issue_tracker/pkg/req"
	"issue_tracker/pkg/resp"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type HandlerDeps struct {
	Serv service.IssueService
	Log  logrus.FieldLogger
}

type Handler struct {
	serv service.IssueService
	log  logrus.FieldLogger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, log: deps.Log}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	issues, err := h.serv.List(r.Context())
	if err != nil {
		errs.Write(w, r, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToIssuesResponse(issues))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := issueID(w, r)
	if !ok {
		return
	}

	issue, err := h.serv.Get(r.Context(), id)
	if err != nil {
		errs.Write(w, r, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToIssueResponse(issue))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.CreateRequest](r.Body)
	if err != nil {
		resp.WriteMessage(w, http.StatusBadRequest, errs.MsgInvalidRequest)
		return
	}

	issue, err := h.serv.Create(r.Context(), converter.ToNewIssue(payload))
	if err != nil {
		errs.Write(w, r, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToIssueResponse(issue))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := issueID(w, r)
	if !ok {
		return
	}

	payload, err := req.Decode[dto.UpdateRequest](r.Body)
	if err != nil {
		resp.WriteMessage(w, http.StatusBadRequest, errs.MsgInvalidRequest)
		return
	}

	issue, err := h.serv.Update(r.Context(), id, converter.ToIssuePatch(payload))
	if err != nil {
		errs.Write(w, r, h.log, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToIssueResponse(issue))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := issueID(w, r)
	if !ok {
		return
	}

	if err := h.serv.Delete(r.Context(), id); err != nil {
		errs.Write(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// issueID - ID задачи из пути; некорректный ID отвечает 404
func issueID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		resp.WriteMessage(w, http.StatusNotFound, errs.MsgIssueNotFound)
		return 0, false
	}
	return id, true
}


package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/playhub/community-api/internal/constants"
	"github.com/playhub/community-api/internal/dispatch"
	"github.com/playhub/community-api/internal/dto"
	apierrors "github.com/playhub/community-api/internal/errors"
	"github.com/sirupsen/logrus"
)

// OperationHandler exposes the dispatcher over HTTP.
type OperationHandler struct {
	dispatcher *dispatch.Dispatcher
	log        logrus.FieldLogger
}

// NewOperationHandler creates a new OperationHandler.
func NewOperationHandler(dispatcher *dispatch.Dispatcher, log logrus.FieldLogger) *OperationHandler {
	return &OperationHandler{
		dispatcher: dispatcher,
		log:        log,
	}
}

// OperationRequest is the body of POST /api/operations
type OperationRequest struct {
	Operation string          `json:"operation" binding:"required"`
	Arguments json.RawMessage `json:"arguments"`
}

// Execute runs any named operation.
func (h *OperationHandler) Execute(c *gin.Context) {
	var req OperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	h.dispatch(c, req.Operation, req.Arguments, http.StatusOK)
}

// Operation returns a handler that runs name with the JSON body as its
// arguments. Query parameters fill in arguments the body does not set, and
// each listed path parameter is parsed as an ID and merged under its name.
func (h *OperationHandler) Operation(name string, successStatus int, pathParams ...string) gin.HandlerFunc {
	return h.alias(name, successStatus, false, pathParams)
}

// InputOperation is Operation for mutations that take a single nested
// input object. A flat body is accepted and wrapped as {"input": body}.
func (h *OperationHandler) InputOperation(name string, successStatus int) gin.HandlerFunc {
	return h.alias(name, successStatus, true, nil)
}

func (h *OperationHandler) alias(name string, successStatus int, wrapInput bool, pathParams []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		args := map[string]json.RawMessage{}

		body, err := c.GetRawData()
		if err != nil {
			apierrors.BadRequest(c, "Invalid request body")
			return
		}
		if len(body) > 0 {
			if err := json.Unmarshal(body, &args); err != nil {
				apierrors.BadRequest(c, "Invalid request body")
				return
			}
			if args == nil {
				args = map[string]json.RawMessage{}
			}
		}

		if _, nested := args["input"]; wrapInput && !nested {
			args = map[string]json.RawMessage{"input": body}
			if len(body) == 0 {
				args["input"] = json.RawMessage("{}")
			}
		}

		for key, values := range c.Request.URL.Query() {
			if _, set := args[key]; set || len(values) == 0 {
				continue
			}
			if n, err := strconv.ParseInt(values[0], 10, 64); err == nil {
				args[key] = json.RawMessage(strconv.FormatInt(n, 10))
			} else {
				quoted, _ := json.Marshal(values[0])
				args[key] = quoted
			}
		}

		for _, param := range pathParams {
			id, err := strconv.ParseUint(c.Param(param), 10, 64)
			if err != nil || id == 0 {
				apierrors.Respond(c, apierrors.Validation("Invalid "+param, map[string]string{
					param: "must be a positive integer",
				}))
				return
			}
			args[param] = json.RawMessage(strconv.FormatUint(id, 10))
		}

		raw, err := json.Marshal(args)
		if err != nil {
			apierrors.InternalError(c, "")
			return
		}
		h.dispatch(c, name, raw, successStatus)
	}
}

func (h *OperationHandler) dispatch(c *gin.Context, name string, args json.RawMessage, successStatus int) {
	result, err := h.dispatcher.Dispatch(c.Request.Context(), name, args)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	if payload, ok := result.(dto.AuthPayload); ok {
		session := sessions.Default(c)
		session.Set(constants.ContextKeyUserID, payload.User.ID)
		if err := session.Save(); err != nil {
			h.log.WithError(err).WithField("request_id", c.GetString(constants.ContextKeyRequestID)).Error("failed to save session")
			apierrors.InternalError(c, "Failed to save session")
			return
		}
	}

	c.JSON(successStatus, gin.H{"data": result})
}

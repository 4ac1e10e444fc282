package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hashdoctor/telehealth-api/internal/api/metrics"
	"github.com/hashdoctor/telehealth-api/internal/core/ports"
)

// ChatHandler handles conversation threads and transcripts.
type ChatHandler struct {
	chat ports.ChatService
}

func NewChatHandler(chat ports.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

type transcriptRequest struct {
	Lines []string `json:"lines" validate:"required,min=1"`
}

// Thread handles GET /v1/chats/:peerID — the conversation between the
// caller and the peer, addressed symmetrically.
//
// @Summary      Get the conversation with a peer
// @Tags         chats
// @Produce      json
// @Security     BearerAuth
// @Param        peerID  path     string  true  "Peer user id (or AI_ASSISTANT)"
// @Success      200     {array}  domain.Message
// @Router       /v1/chats/{peerID} [get]
func (h *ChatHandler) Thread(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	msgs, err := h.chat.Thread(c.Request().Context(), callerID, c.Param("peerID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgs)
}

// Send handles POST /v1/chats/:peerID. Messages to AI_ASSISTANT
// schedule an asynchronous triage reply on the same thread.
//
// @Summary      Send a message to a peer
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        peerID  path      string              true  "Peer user id (or AI_ASSISTANT)"
// @Param        body    body      sendMessageRequest  true  "Message text"
// @Success      201     {object}  domain.Message
// @Failure      404     {object}  map[string]string
// @Router       /v1/chats/{peerID} [post]
func (h *ChatHandler) Send(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg, err := h.chat.Send(c.Request().Context(), ports.SendMessageInput{
		SenderID: callerID,
		PeerID:   c.Param("peerID"),
		Text:     req.Text,
	})
	if err != nil {
		return err
	}

	metrics.MessagesStoredTotal.WithLabelValues("user").Inc()
	return c.JSON(http.StatusCreated, msg)
}

// SaveTranscript handles POST /v1/chats/:peerID/transcript — bulk
// ingestion of an SOS voice dialogue into the thread with the patient.
//
// @Summary      Store an SOS voice transcript as chat messages
// @Tags         chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        peerID  path     string             true  "Patient id the transcript belongs with"
// @Param        body    body     transcriptRequest  true  "Dialogue lines (You:/AI: prefixed)"
// @Success      201     {array}  domain.Message
// @Router       /v1/chats/{peerID}/transcript [post]
func (h *ChatHandler) SaveTranscript(c echo.Context) error {
	callerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req transcriptRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msgs, err := h.chat.SaveTranscript(c.Request().Context(), callerID, c.Param("peerID"), req.Lines)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, msgs)
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"duochat/internal/app/message"
	"duochat/internal/pkg/req"
	"duochat/internal/pkg/resp"
)

// HandleListUsers returns every user except the caller.
func HandleListUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := deps.Messages.ListOtherUsers(r.Context(), CurrentUser(r).ID)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, users)
	}
}

// HandleGetConversation returns the caller's conversation with the user in the path.
func HandleGetConversation(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		otherID := chi.URLParam(r, "id")

		msgs, err := deps.Messages.GetConversation(r.Context(), CurrentUser(r).ID, otherID)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, msgs)
	}
}

type SendMessageInput struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// HandleSendMessage sends a message from the caller to the user in the path.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		receiverID := chi.URLParam(r, "id")

		var input SendMessageInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		msg, err := deps.Messages.SendMessage(r.Context(), CurrentUser(r).ID, receiverID, message.SendInput{
			Text:  input.Text,
			Image: input.Image,
		})
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondCreated(w, r, msg)
	}
}

/*
Package resp provides helper functions for constructing and sending standardized HTTP JSON responses.

It defines a unified JSON response structure, including a business code, message, and optional data,
and offers convenient wrappers for both success and error responses.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"duochat/internal/pkg/errs"
	"duochat/internal/pkg/logx"
)

// JSONResponse defines the standardized JSON response structure returned by the application to clients.
type JSONResponse struct {
	// Code is the business status code (0 for success, others for specific errors, see errs package).
	Code int `json:"code"`

	// Message is the client-friendly status description or error message.
	Message string `json:"message"`

	// Data is the optional response payload (e.g., data returned from a successful request).
	Data any `json:"data,omitempty"`
}

// RespondJSON is a generic response function used to set the Content-Type and send the JSON payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.ErrorCtx(r.Context(), err, "Error encoding JSON response", "http_status", httpStatus)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	_, _ = w.Write(response)
}

// RespondSuccess sends a successful HTTP response (HTTP 200 OK).
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	RespondStatus(w, r, http.StatusOK, data)
}

// RespondCreated sends a successful HTTP response for a newly created resource (HTTP 201 Created).
func RespondCreated(w http.ResponseWriter, r *http.Request, data any) {
	RespondStatus(w, r, http.StatusCreated, data)
}

// RespondStatus sends a success envelope with an explicit HTTP status.
func RespondStatus(w http.ResponseWriter, r *http.Request, httpStatus int, data any) {
	res := JSONResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	}
	RespondJSON(w, r, httpStatus, res)
}

// RespondError sends an HTTP response containing custom error information.
// Only the code and top-level message reach the client; the diagnostic is logged.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	if customErr.Diagnostic != "" || customErr.Kind == errs.KindConfiguration || customErr.Kind == errs.KindInternal {
		logx.ErrorCtx(r.Context(), customErr.Unwrap(), "Request failed",
			"code", customErr.Code,
			"kind", customErr.Kind.String(),
			"diagnostic", customErr.Diagnostic,
		)
	}

	res := JSONResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
		Data:    nil,
	}
	RespondJSON(w, r, customErr.Status, res)
}

// RespondErr maps an arbitrary error onto the taxonomy and responds with it.
func RespondErr(w http.ResponseWriter, r *http.Request, err error) {
	RespondError(w, r, errs.From(err))
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/wpdevquiz/proctor/pkg/httpx"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeJSON parses and validates a request body into v. On failure it has
// already written the 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Malformed JSON body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		if f.Tag() == "required" {
			return fmt.Sprintf("%s is required", f.Field())
		}
		return fmt.Sprintf("%s is invalid (%s)", f.Field(), f.Tag())
	}
	return "Request validation failed"
}

func writeServerError(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusInternalServerError, "server_error", desc)
}

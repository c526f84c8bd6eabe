package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

var errNoEmployeeClaim = errors.New("employee_id not found in claims")

// employeeIDFromRequest pulls the authenticated employee out of the verified
// JWT. Services take it as an explicit argument rather than digging through
// the context themselves.
func employeeIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", errNoEmployeeClaim
	}
	return employeeID, nil
}

func userIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("user_id not found in claims")
	}
	return userID, nil
}

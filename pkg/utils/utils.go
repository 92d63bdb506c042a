package utils

import (
	"encoding/json"
	"net/http"
)

// ReadJSON decodifica el cuerpo de la peticion rechazando campos
// desconocidos.
func ReadJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

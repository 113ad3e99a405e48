package dto

import (
	"strconv"
	"strings"
)

/* =========================================================
   REQUEST: PUT /settings
========================================================= */

// Value takes whatever JSON scalar the client sends; it is stored as text.
type PutSettingRequest struct {
	Key   string `json:"key"   validate:"required,max=80"`
	Value any    `json:"value" validate:"required"`
}

func (r *PutSettingRequest) Normalize() {
	r.Key = strings.TrimSpace(r.Key)
}

func (r PutSettingRequest) ValueString() string {
	switch v := r.Value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	}
	return ""
}

/* =========================================================
   RESPONSE
========================================================= */

type SettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

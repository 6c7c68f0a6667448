package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RespondJSONWithETag writes the payload with a strong ETag over its JSON
// form and answers If-None-Match revalidations with 304. The marketing
// payload rarely changes, so most repeat visits skip the body entirely.
func RespondJSONWithETag(ctx *gin.Context, status int, payload interface{}) {
	etag, err := payloadETag(payload)

	if err != nil {
		ctx.JSON(status, payload)
		return
	}

	ctx.Header("ETag", etag)

	if etagMatches(ctx.GetHeader("If-None-Match"), etag) {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.JSON(status, payload)
}

func payloadETag(payload interface{}) (string, error) {
	b, err := json.Marshal(payload)

	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(b)

	return `"` + hex.EncodeToString(sum[:]) + `"`, nil
}

func etagMatches(header, current string) bool {
	header = strings.TrimSpace(header)

	if header == "" || current == "" {
		return false
	}

	if header == "*" {
		return true
	}

	want := trimETag(current)

	for _, candidate := range strings.Split(header, ",") {
		if trimETag(candidate) == want {
			return true
		}
	}

	return false
}

// trimETag strips whitespace and the weak-validator prefix (W/"abc").
func trimETag(raw string) string {
	v := strings.TrimSpace(raw)

	if strings.HasPrefix(v, "W/") {
		v = strings.TrimSpace(strings.TrimPrefix(v, "W/"))
	}

	return v
}

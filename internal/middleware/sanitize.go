package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// Sanitize strips HTML and script content from every string value in JSON
// request bodies and query parameters before handlers bind them.
func Sanitize() gin.HandlerFunc {
	policy := bluemonday.StrictPolicy()

	return func(c *gin.Context) {
		if c.Request.Body != nil && isJSONRequest(c) {
			body, err := io.ReadAll(c.Request.Body)
			if err == nil && len(body) > 0 {
				if cleaned, ok := sanitizeJSON(policy, body); ok {
					body = cleaned
				}
				c.Request.Body = io.NopCloser(bytes.NewReader(body))
			}
		}

		query := c.Request.URL.Query()
		changed := false
		for key, values := range query {
			for i, value := range values {
				if cleaned := policy.Sanitize(value); cleaned != value {
					values[i] = cleaned
					changed = true
				}
			}
			query[key] = values
		}
		if changed {
			c.Request.URL.RawQuery = query.Encode()
		}

		c.Next()
	}
}

func isJSONRequest(c *gin.Context) bool {
	contentType := c.ContentType()
	return contentType == "application/json" || contentType == ""
}

// sanitizeJSON decodes the body, scrubs all string values recursively and
// re-encodes. Bodies that are not valid JSON pass through untouched so the
// binding layer reports the error instead.
func sanitizeJSON(policy *bluemonday.Policy, body []byte) ([]byte, bool) {
	var payload interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, false
	}

	cleaned, err := json.Marshal(sanitizeValue(policy, payload))
	if err != nil {
		return nil, false
	}
	return cleaned, true
}

func sanitizeValue(policy *bluemonday.Policy, value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return policy.Sanitize(v)
	case map[string]interface{}:
		for key, item := range v {
			v[key] = sanitizeValue(policy, item)
		}
		return v
	case []interface{}:
		for i, item := range v {
			v[i] = sanitizeValue(policy, item)
		}
		return v
	default:
		return value
	}
}

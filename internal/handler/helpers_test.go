package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"

	"lexbrief/internal/middleware"
	"lexbrief/internal/web"
)

const testSession = "4f1c2a8e-6a52-4c8b-9a55-0f8f6b3d2e11"

func init() {
	gin.SetMode(gin.TestMode)
}

// newContext builds a test context with templates loaded and the session set.
func newContext(method, target string, body *bytes.Buffer, contentType string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)
	r.SetHTMLTemplate(web.Templates())

	if body == nil {
		c.Request, _ = http.NewRequest(method, target, http.NoBody)
	} else {
		c.Request, _ = http.NewRequest(method, target, body)
	}
	if contentType != "" {
		c.Request.Header.Set("Content-Type", contentType)
	}
	c.Set(middleware.ContextKeySessionID, testSession)
	return c, w
}

func multipartBody(fileName string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		_ = writer.WriteField(k, v)
	}
	if fileName != "" {
		part, _ := writer.CreateFormFile("file", fileName)
		_, _ = part.Write(content)
	}
	_ = writer.Close()
	return body, writer.FormDataContentType()
}

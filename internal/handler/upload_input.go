package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lexbrief/internal/domain"
	"lexbrief/internal/middleware"
	"lexbrief/internal/service"
)

// multipartOverhead is the allowance for form fields and part headers on top
// of the file ceiling.
const multipartOverhead = 1 << 20

// bindSubmitInput reads the first "file" part and the "profile" field. The
// returned cleanup closes the file.
func bindSubmitInput(c *gin.Context, maxFileBytes int64) (service.SubmitInput, func(), error) {
	noop := func() {}
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFileBytes+multipartOverhead)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return service.SubmitInput{}, noop, domain.NewFileTooLargeError(maxFileBytes)
		}
		return service.SubmitInput{}, noop, domain.ErrMissingFile
	}

	input := service.SubmitInput{
		SessionID: middleware.GetSessionID(c),
		Profile:   c.PostForm("profile"),
		File:      file,
		Header:    header,
	}
	return input, func() { _ = file.Close() }, nil
}

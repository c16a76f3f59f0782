package response

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"github.com/adarchive/adlib-gateway/internal/constants"
)

// Buffer pool for high-performance JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return &bytes.Buffer{}
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	// Prevent memory leak from oversized buffers (>64KB)
	const maxBufferSize = 64 * 1024
	if buf.Cap() < maxBufferSize {
		bufferPool.Put(buf)
	}
}

// fastJSON performs JSON serialization with buffer pooling.
func fastJSON(c echo.Context, code int, obj interface{}) error {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(obj); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSONCharsetUTF8)
	c.Response().WriteHeader(code)
	_, err := c.Response().Write(buf.Bytes())
	return err
}

// errorEnvelope is the uniform failure body for every endpoint.
type errorEnvelope struct {
	Error string `json:"error"`
}

// OK writes obj with status 200.
func OK(c echo.Context, obj any) error {
	return fastJSON(c, http.StatusOK, obj)
}

// Error writes the {"error": message} envelope with the given status.
func Error(c echo.Context, httpStatus int, message string) error {
	return fastJSON(c, httpStatus, errorEnvelope{Error: message})
}

// ErrorWithCode writes the envelope using the standard message and HTTP
// status for a gateway error code.
func ErrorWithCode(c echo.Context, code int) error {
	return Error(c, constants.GetHTTPStatusFromCode(code), constants.GetErrorMessage(code))
}

// CSV writes raw CSV bytes as a file attachment.
func CSV(c echo.Context, filename string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+filename)
	c.Response().WriteHeader(http.StatusOK)
	_, err := c.Response().Write(data)
	return err
}

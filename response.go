package rawhttp

import (
	"strconv"
)

// maxHeaderSize bounds the rendered header block of a response.
const maxHeaderSize = 512

var reasonPhrases = map[Code]string{
	CodeOK:                  "OK",
	CodeBadRequest:          "Bad Request",
	CodeNotFound:            "Not Found",
	CodeInternalServerError: "Internal Server Error",
}

// StatusText returns the status line text for code, e.g. "404 Not Found". Codes the
// server does not emit render as "500 Internal Server Error".
func StatusText(code Code) string {
	reason, ok := reasonPhrases[code]
	if !ok {
		code, reason = CodeInternalServerError, reasonPhrases[CodeInternalServerError]
	}

	return strconv.Itoa(int(code)) + " " + reason
}

// ContentType returns the media type used for a response with the given code: plain
// text for bad requests and server errors, html otherwise.
func ContentType(code Code) string {
	if code == CodeBadRequest || code >= CodeInternalServerError || reasonPhrases[code] == "" {
		return "text/plain"
	}

	return "text/html"
}

// BuildResponse serializes an HTTP/1.1 response with the given code and body. A nil or
// empty body results in "Content-Length: 0". The returned buffer is freshly allocated
// and owned by the caller. A nil result means the header could not be rendered and
// nothing should be sent.
func BuildResponse(code Code, body []byte) []byte {
	return buildResponse(code, body, maxHeaderSize)
}

// buildResponse renders the header into a scratch buffer and returns nil when it is
// longer than limit. The fixed header template stays well under maxHeaderSize.
func buildResponse(code Code, body []byte, limit int) []byte {
	var scratch [maxHeaderSize]byte

	hdr := scratch[:0]
	hdr = append(hdr, "HTTP/1.1 "...)
	hdr = append(hdr, StatusText(code)...)
	hdr = append(hdr, "\r\nContent-Type: "...)
	hdr = append(hdr, ContentType(code)...)
	hdr = append(hdr, "\r\nContent-Length: "...)
	hdr = strconv.AppendInt(hdr, int64(len(body)), 10)
	hdr = append(hdr, "\r\n\r\n"...)

	if len(hdr) > limit {
		return nil
	}

	resp := make([]byte, 0, len(hdr)+len(body))
	resp = append(resp, hdr...)
	resp = append(resp, body...)

	return resp
}

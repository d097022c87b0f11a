package httputil

import "mime"

// AttachmentDisposition builds a Content-Disposition value for a download.
// The filename is quoted or RFC 2231 encoded as needed, so client supplied
// names cannot break the header.
func AttachmentDisposition(filename string) string {
	if filename == "" {
		return "attachment"
	}
	if value := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); value != "" {
		return value
	}
	return "attachment"
}

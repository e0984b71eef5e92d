package ipc

import (
	"encoding/json"
	"io"
)

// WriteRequest writes a Request as JSON to the stream
func WriteRequest(w io.Writer, req *Request) error {
	return newEncoder(w).Encode(req)
}

// ReadRequest reads a Request as JSON from the stream
func ReadRequest(r io.Reader) (*Request, error) {
	var req Request
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// WriteResponse writes a Response as JSON to the stream
func WriteResponse(w io.Writer, resp *Response) error {
	return newEncoder(w).Encode(resp)
}

// ResponseReader decodes consecutive responses from one stream.
// Listen streams carry many; a fresh decoder per read would drop buffered bytes.
type ResponseReader struct {
	dec *json.Decoder
}

func NewResponseReader(r io.Reader) *ResponseReader {
	return &ResponseReader{dec: json.NewDecoder(r)}
}

// Read returns the next response, or io.EOF when the stream is closed normally.
func (rr *ResponseReader) Read() (*Response, error) {
	var resp Response
	if err := rr.dec.Decode(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

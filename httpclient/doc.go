// Package httpclient is the outbound transport for upstream AI providers.
//
// An Adapter is bound to one upstream: a base URL, a per-request timeout and
// an API key sent either as a header or as a query parameter. It issues at
// most one HTTP call per Execute and never retries. Outcomes are classified
// into *Error values, and ToAppError maps them onto the gateway's error
// taxonomy:
//
//	adapter, _ := httpclient.New(httpclient.Config{
//	    Name:    "ocr",
//	    BaseURL: "https://ocrdoc.infer.visai.ai",
//	    Timeout: 60 * time.Second,
//	    Auth:    httpclient.APIKeyAuth(key),
//	})
//
//	body := (&httpclient.MultipartBody{}).AddFile("files", "r.jpg", "image/jpeg", data)
//	resp, err := adapter.Do(ctx, httpclient.Request{Method: http.MethodPost, Path: "/predict", Body: body})
//	if err != nil {
//	    return httpclient.ToAppError("ocr", "OCR API error: ", err)
//	}
package httpclient

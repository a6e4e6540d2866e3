// Package transcription turns audio uploads into speaker-tagged transcripts
// through the speech-to-text inference service.
//
// The provider is composed from the shared HTTP transport:
//
//	transport, _ := httpclient.New(httpclient.Config{
//	    Name:    transcription.Name,
//	    BaseURL: "https://stt.infer.visai.ai",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.APIKeyAuth(key),
//	})
//	results, err := transcription.New(transport).Execute(ctx, transcription.Request{Files: files})
package transcription

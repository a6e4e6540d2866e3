package api

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/aigateway/errors"
	"github.com/kbukum/aigateway/expense"
	"github.com/kbukum/aigateway/server"
	"github.com/kbukum/aigateway/validation"
)

// TestText is the fixed Thai diary entry run by the test route.
const TestText = "วันนี้ไปซื้อกาแฟ 60 บาท และซื้อขนมปัง 25 บาท หลังจากนั้นไปซื้ออาหารกลางวัน 120 บาท น้ำเปล่า 10 บาท ซื้อผลไม้ 45 บาท เดินทางด้วยรถไฟฟ้า 40 บาท ซื้อของใช้ในบ้าน 250 บาท เติมน้ำมัน 1000 บาท ค่าโทรศัพท์ 300 บาท ค่าบริการอินเทอร์เน็ต 500 บาท ค่าไฟฟ้า 1200 บาท ค่าเช่าบ้าน 8000 บาท ซื้อหนังสือ 300 บาท ค่าเรียนพิเศษ 2000 บาท และค่ารักษาพยาบาล 500 บาท"

// bodyInvalid is the message for every request-body schema failure.
const bodyInvalid = "Request body validation failed"

// testResult is the test route's body: the result plus the input used.
type testResult struct {
	expense.Result
	TestText string `json:"testText"`
	Message  string `json:"message"`
}

// Extract handles POST /extract with body {"text": "..."}.
func (h *Handler) Extract(c *gin.Context) {
	req, err := bindExtract(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	result, err := h.svc.ExtractExpenses(c.Request.Context(), req.Text)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, result)
}

// ExtractTest handles GET /extract/test.
func (h *Handler) ExtractTest(c *gin.Context) {
	result, err := h.svc.ExtractExpenses(c.Request.Context(), TestText)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, testResult{Result: result, TestText: TestText, Message: "Test completed successfully"})
}

// bindExtract decodes and checks the body. Every failure is reported as a
// body validation error with per-field details.
func bindExtract(c *gin.Context) (expense.Request, error) {
	var req expense.Request
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		if isBodyTooLarge(err) {
			return req, err
		}
		return req, bodyError(decodeField(err))
	}
	req.Text = strings.TrimSpace(req.Text)

	if err := validation.Validate(req); err != nil {
		appErr, _ := apperrors.AsAppError(err)
		fields, _ := appErr.Details["fields"].([]validation.FieldError)
		return req, bodyError(fields...)
	}
	return req, nil
}

func bodyError(fields ...validation.FieldError) *apperrors.AppError {
	return apperrors.Validation(bodyInvalid).WithDetail("fields", fields)
}

// decodeField turns a JSON decode failure into a field error.
func decodeField(err error) validation.FieldError {
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return validation.FieldError{Field: typeErr.Field, Message: "must be a " + typeErr.Type.String()}
	case errors.Is(err, io.EOF):
		return validation.FieldError{Field: "text", Message: "is required"}
	default:
		return validation.FieldError{Field: "body", Message: "must be a JSON object"}
	}
}

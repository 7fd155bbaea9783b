package extract

import (
    "encoding/base64"
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestQuestionFromPDFRejectsEmpty(t *testing.T) {
    _, err := QuestionFromPDF("")
    assert.Error(t, err)
}

func TestQuestionFromPDFRejectsBadBase64(t *testing.T) {
    _, err := QuestionFromPDF("%%%not base64%%%")
    assert.ErrorContains(t, err, "invalid base64")
}

func TestQuestionFromPDFRejectsNonPDF(t *testing.T) {
    data := base64.StdEncoding.EncodeToString([]byte("just some text, not a pdf"))
    _, err := QuestionFromPDF(data)
    assert.ErrorContains(t, err, "invalid pdf")
}

func TestQuestionFromPDFRejectsOversized(t *testing.T) {
    t.Setenv("PDF_MAX_BYTES", "8")
    data := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))
    _, err := QuestionFromPDF(data)
    assert.ErrorContains(t, err, "too large")
}

func TestQuestionFromPDFStripsDataURI(t *testing.T) {
    // data: prefix is tolerated; the payload is still validated
    _, err := QuestionFromPDF("data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("nope")))
    assert.ErrorContains(t, err, "invalid pdf")
}

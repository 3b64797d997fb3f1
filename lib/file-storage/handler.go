package filestorage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

const receiptPrefix = "receipts"

type Provider interface {
	UploadReceipt(ctx context.Context, employeeID, fileName, contentType string, file io.Reader, fileSize int64) (key string, err error)
	GetReceipt(ctx context.Context, key string) (body []byte, contentType string, err error)
}

var Instance Provider

// NewReceiptKey receipts/<employeeID>/<uuid><ext>
func NewReceiptKey(employeeID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("%s/%s/%s%s", receiptPrefix, employeeID, uuid.New().String(), ext)
}

// IsReceiptKey значение receipt указывает на загруженный файл, а не на внешнюю ссылку
func IsReceiptKey(value string) bool {
	return strings.HasPrefix(value, receiptPrefix+"/")
}

func IsReceiptOwner(key, employeeID string) bool {
	return employeeID != "" && strings.HasPrefix(key, fmt.Sprintf("%s/%s/", receiptPrefix, employeeID))
}

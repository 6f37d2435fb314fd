package checkout

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewInvoiceNumber builds "PREFIX-yyyymmdd-XXXXXXXX" where the suffix is drawn
// from a fresh UUID. Uniqueness is enforced by the transactions table; a
// collision aborts the attempt and the caller retries with a new number.
func NewInvoiceNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102"), suffix)
}

package mutation

import (
	"strconv"
	"time"

	"github.com/goliatone/go-sdui/internal/schema"
)

// ExportFileName suggests a download name: <name|id|sdui-schema>-<unix-millis>.json.
func ExportFileName(doc *schema.Schema, now time.Time) string {
	base := "sdui-schema"
	if doc != nil {
		switch {
		case doc.Name != "":
			base = doc.Name
		case doc.ID != "":
			base = doc.ID
		}
	}
	return base + "-" + strconv.FormatInt(now.UnixMilli(), 10) + ".json"
}

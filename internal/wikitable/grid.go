package wikitable

import (
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/f1wiki/f1-wikitable/internal/model"
)

const gridHeader = `===Grid===
<div class="mw-customtoggle-Grid wds-button wds-is-secondary">Show Grid</div>
<div class="mw-collapsible mw-collapsed" id="mw-customcollapsible-Grid">
{{Grid/2-2/34r
`

// Grid writes the collapsible starting grid, one slot per qualifying row.
func (f *Formatter) Grid(w io.Writer, q *model.Qualifying) error {
	if q == nil || len(q.Rows) == 0 {
		return eris.Wrap(ErrNoData, "wikitable: grid")
	}

	var b strings.Builder
	b.WriteString(gridHeader)
	for _, r := range q.Rows {
		flag := f.tables.Flag(r.Driver.Nationality).Markup
		fmt.Fprintf(&b, "| %s %s. [[%s|%s]]\n", flag, r.Number, r.Driver.FullName(), r.Driver.FamilyName)
	}
	b.WriteString("}}</div>\n")

	return flush(w, &b)
}

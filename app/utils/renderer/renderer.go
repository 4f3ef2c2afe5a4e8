package renderer

import (
	"github.com/unrolled/render"
)

func New(isDevelopment bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:   isDevelopment,
		UnEscapeHTML: true,
		Charset:      "UTF-8",
	})
}

package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// HomePage renders the landing page. Signed-in users get the dashboard shell
// that subscribes to the live stats feed; everyone else a sign-in hint.
func HomePage(username string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html><html lang="zh-CN"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>牛子助手</title><script type="module" src="%s"></script></head><body>`, datastarScript)
		if err != nil {
			return err
		}

		if username == "" {
			_, err = io.WriteString(w, `<main><h1>牛子助手</h1><p>请先登录。</p></main></body></html>`)
			return err
		}

		_, err = fmt.Fprintf(w, `<main data-init="@get('/api/records/live')"><h1>%s</h1>`+
			`<div id="%s"></div><div id="%s"></div></main></body></html>`,
			templ.EscapeString(username), SummaryID, AchievementsID)
		return err
	})
}

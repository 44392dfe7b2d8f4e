package publish

import (
	"bytes"
	"errors"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"chatweaver/internal/model"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	// Raw HTML in messages is escaped: html.WithUnsafe is not set.
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderChatHTML renders the Markdown script as a standalone HTML page.
func RenderChatHTML(ws *model.Workspace, chatID string, opt RenderOptions) (string, error) {
	md, err := RenderChatMarkdown(ws, chatID, opt)
	if err != nil {
		return "", err
	}
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(md), &body); err != nil {
		return "", err
	}
	chat, _ := ws.Chat(chatID)
	var page bytes.Buffer
	err = pageTemplate.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{
		Title: titleOr(chat.Name, chat.ID),
		// goldmark output is trusted only because raw HTML is disabled above.
		Body: template.HTML(body.String()),
	})
	if err != nil {
		return "", err
	}
	return page.String(), nil
}

type WriteOptions struct {
	HTML       bool
	IncludeIDs bool
	Overwrite  bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteChat renders one chat into toDir as <chat-name>.md (or .html).
func WriteChat(ws *model.Workspace, chatID, toDir string, opt WriteOptions) (WriteResult, error) {
	if ws == nil {
		return WriteResult{}, errors.New("missing workspace")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	chat, ok := ws.Chat(strings.TrimSpace(chatID))
	if !ok {
		return WriteResult{}, errors.New("chat not found: " + chatID)
	}

	ropt := RenderOptions{IncludeIDs: opt.IncludeIDs}
	var (
		out string
		err error
		ext = ".md"
	)
	if opt.HTML {
		out, err = RenderChatHTML(ws, chat.ID, ropt)
		ext = ".html"
	} else {
		out, err = RenderChatMarkdown(ws, chat.ID, ropt)
	}
	if err != nil {
		return WriteResult{}, err
	}

	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	path := filepath.Join(toDir, slug(chat.Name, chat.ID)+ext)
	if err := writeFile(path, []byte(out), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{path}}, nil
}

// WriteWorkspace renders every chat of ws.
func WriteWorkspace(ws *model.Workspace, toDir string, opt WriteOptions) (WriteResult, error) {
	if ws == nil {
		return WriteResult{}, errors.New("missing workspace")
	}
	var res WriteResult
	for _, c := range ws.Chats {
		r, err := WriteChat(ws, c.ID, toDir, opt)
		if err != nil {
			return res, err
		}
		res.Written = append(res.Written, r.Written...)
	}
	return res, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}

// slug makes a file-name-safe lowercase name; chats without a usable name use their id.
func slug(name, fallback string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return fallback
	}
	return s
}

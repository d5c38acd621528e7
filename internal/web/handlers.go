package web

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/valpere/gemtext/internal/completion"
	"github.com/valpere/gemtext/internal/markdown"
	"github.com/valpere/gemtext/internal/prompt"
	"github.com/valpere/gemtext/internal/shell"
)

type modeChoice struct {
	Value   prompt.Mode
	Label   string
	Checked bool
}

type selectOption struct {
	Value    string
	Selected bool
}

type bounds struct {
	MinTemperature  float64
	MaxTemperature  float64
	TemperatureStep float64
	MinMaxTokens    int
	MaxMaxTokens    int
	MaxTokensStep   int
}

var paramBounds = bounds{
	MinTemperature:  prompt.MinTemperature,
	MaxTemperature:  prompt.MaxTemperature,
	TemperatureStep: prompt.TemperatureStep,
	MinMaxTokens:    prompt.MinMaxTokens,
	MaxMaxTokens:    prompt.MaxMaxTokens,
	MaxTokensStep:   prompt.MaxTokensStep,
}

type pageData struct {
	Title       string
	Modes       []modeChoice
	Header      string
	InputLabel  string
	OptionLabel string
	Action      string
	ButtonLabel string
	BusyText    string
	Options     []selectOption
	Text        string
	Params      prompt.GenerationParams
	Bounds      bounds
	Result      *shell.Result
	Output      template.HTML
	Markdown    bool
	Error       string
	Failed      bool
}

func (s *Server) page(mode prompt.Mode, text, option string, params prompt.GenerationParams) pageData {
	d := pageData{
		Title:    Title,
		Text:     text,
		Params:   params,
		Bounds:   paramBounds,
		BusyText: shell.BusyText(mode),
	}
	for _, m := range []prompt.Mode{prompt.Translation, prompt.Enhancement} {
		d.Modes = append(d.Modes, modeChoice{Value: m, Label: m.Label(), Checked: m == mode})
	}

	if mode == prompt.Enhancement {
		d.Header = "Text Enhancement"
		d.InputLabel = "Enter text to enhance:"
		d.OptionLabel = "Select enhancement type:"
		d.Action = "/enhance"
		d.ButtonLabel = "Enhance"
	} else {
		d.Header = "Text Translation"
		d.InputLabel = "Enter text to translate:"
		d.OptionLabel = "Select language to translate into:"
		d.Action = "/translate"
		d.ButtonLabel = "Translate"
	}

	for i, v := range mode.Options() {
		selected := strings.EqualFold(v, option) || (option == "" && i == 0)
		d.Options = append(d.Options, selectOption{Value: v, Selected: selected})
	}
	return d
}

func (s *Server) handleIndex(c *gin.Context) {
	mode := prompt.Translation
	if q := c.Query("mode"); q != "" {
		if m, err := prompt.ParseMode(q); err == nil {
			mode = m
		}
	}

	// sidebar values survive a mode switch through the query string
	params, err := s.params(c.GetQuery)
	if err != nil || params.Validate() != nil {
		params = s.opts.Defaults
	}
	c.HTML(http.StatusOK, "page.html", s.page(mode, "", "", params))
}

func (s *Server) handleTrigger(mode prompt.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		text := c.PostForm("text")
		option := c.PostForm("option")

		params, err := s.params(c.GetPostForm)
		if err != nil {
			d := s.page(mode, text, option, params)
			d.Error = err.Error()
			c.HTML(http.StatusUnprocessableEntity, "page.html", d)
			return
		}

		d := s.page(mode, text, option, params)

		res, err := s.shell.Handle(c.Request.Context(), shell.Form{
			Mode:   mode,
			Text:   text,
			Option: option,
			Params: params,
		})
		if err != nil {
			if shell.IsValidation(err) {
				d.Error = err.Error()
				c.HTML(http.StatusUnprocessableEntity, "page.html", d)
				return
			}
			var svcErr *completion.ServiceError
			if !errors.As(err, &svcErr) {
				s.logger.Error("unexpected handler error", zap.Error(err))
			}
			_ = c.Error(err)
			d.Failed = true
			c.HTML(http.StatusBadGateway, "page.html", d)
			return
		}

		d.Result = &res
		if s.opts.Markdown {
			d.Markdown = true
			d.Output = markdown.ToHTML(res.Text)
		} else {
			d.Output = template.HTML(template.HTMLEscapeString(res.Text))
		}
		c.HTML(http.StatusOK, "page.html", d)
	}
}

// params reads the sidebar controls through get, falling back to the
// defaults for any field that is missing. Fields that parse are kept even
// when another one does not.
func (s *Server) params(get func(key string) (string, bool)) (prompt.GenerationParams, error) {
	p := s.opts.Defaults
	var errs []error

	if v, ok := get("temperature"); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err != nil {
			errs = append(errs, errors.New("temperature must be a number"))
		} else {
			p.Temperature = f
		}
	}
	if v, ok := get("max_tokens"); ok && v != "" {
		if n, err := strconv.Atoi(v); err != nil {
			errs = append(errs, errors.New("max tokens must be a whole number"))
		} else {
			p.MaxTokens = n
		}
	}
	return p, errors.Join(errs...)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"state":  s.shell.State().String(),
	})
}

package web

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vidsum/pkg/languages"
	"vidsum/pkg/notify"
	"vidsum/pkg/summary"
)

// maxQueryURL bounds the url hint passed to the result screen.
const maxQueryURL = 200

type historyEntry struct {
	Index   int
	Record  summary.Record
	Preview string
	Time    string
	Kind    summary.VideoKind
}

func normalizeGroup(group string) string {
	if group == languages.GroupIndian {
		return languages.GroupIndian
	}
	return languages.GroupCountry
}

func (s *Server) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func (s *Server) handleIndex(c *gin.Context) {
	group := normalizeGroup(c.Query("group"))
	s.render(c, "input", "Home", gin.H{
		"Group":     group,
		"Groups":    s.catalog.Groups(),
		"Languages": s.catalog.Options(group),
		"Selected":  summary.DefaultLanguageCode,
	})
}

func (s *Server) handleSummarize(c *gin.Context) {
	sourceReference, err := summary.ValidateSourceReference(c.PostForm("url"))
	if err != nil {
		var ve *summary.ValidationError
		if errors.As(err, &ve) {
			s.notices.Notify(notify.LevelError, ve.Message)
		} else {
			s.notices.Notify(notify.LevelError, err.Error())
		}
		s.redirect(c, "/")
		return
	}

	group := normalizeGroup(c.PostForm("group"))
	lang := s.catalog.Resolve(group, c.PostForm("language"))

	text, err := s.gateway.Summarize(c.Request.Context(), sourceReference, lang.Name)
	if err != nil {
		s.logger.Warn("summarize failed", zap.String("url", sourceReference), zap.Error(err))
		s.notices.Notify(notify.LevelError, "Failed to generate summary")
		s.redirect(c, "/?group="+url.QueryEscape(group))
		return
	}

	record := summary.NewRecord(text, sourceReference, lang, s.now())
	savedLatest := s.store.SaveLatest(c.Request.Context(), record)
	appended := s.store.Append(c.Request.Context(), record)

	if !savedLatest {
		// The result screen reads the latest slot, so there is nothing to show.
		s.logger.Warn("latest summary not persisted", zap.String("url", sourceReference))
		s.notices.Notify(notify.LevelError, "Failed to save summary")
		if appended {
			s.redirect(c, "/history")
		} else {
			s.redirect(c, "/")
		}
		return
	}

	s.notices.Notify(notify.LevelSuccess, "Summary generated successfully!")
	if !appended {
		s.logger.Warn("summary not added to history", zap.String("url", sourceReference))
		s.notices.Notify(notify.LevelWarning, "Failed to save to history")
	}

	hint := sourceReference
	if r := []rune(hint); len(r) > maxQueryURL {
		hint = string(r[:maxQueryURL])
	}
	params := url.Values{}
	params.Set("url", hint)
	params.Set("languageVal", lang.Name)
	params.Set("fromGeneration", "true")
	s.redirect(c, "/summary?"+params.Encode())
}

// loadLatest returns the latest record or redirects home with a notice.
func (s *Server) loadLatest(c *gin.Context) (*summary.Record, bool) {
	record, ok := s.store.LoadLatest(c.Request.Context())
	if !ok {
		s.redirect(c, "/")
		return nil, false
	}
	if record == nil {
		s.notices.Notify(notify.LevelError, "No summary data found")
		s.redirect(c, "/")
		return nil, false
	}
	return record, true
}

func (s *Server) handleSummary(c *gin.Context) {
	record, ok := s.loadLatest(c)
	if !ok {
		return
	}

	rendered, err := summary.RenderHTML(record.Summary)
	if err != nil {
		s.logger.Warn("failed to render summary", zap.Error(err))
		rendered = template.HTML(template.HTMLEscapeString(summary.StripBold(record.Summary)))
	}

	// Query parameters are hints only; the stored record wins.
	language := record.LanguageName
	if language == "" {
		language = c.DefaultQuery("languageVal", c.Query("language"))
	}

	s.render(c, "summary", "Summary", gin.H{
		"Record":         record,
		"Rendered":       rendered,
		"Language":       language,
		"FromGeneration": c.Query("fromGeneration") == "true",
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	record, ok := s.loadLatest(c)
	if !ok {
		return
	}

	now := s.now()
	body := summary.Export(*record, now, s.location)
	c.Header("Content-Disposition", `attachment; filename="`+summary.DownloadFilename(now)+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (s *Server) handleHistory(c *gin.Context) {
	records := s.store.ListSortedByTimeDescending(c.Request.Context())

	entries := make([]historyEntry, len(records))
	for i, r := range records {
		entries[i] = historyEntry{
			Index:   i,
			Record:  r,
			Preview: summary.Truncate(summary.StripBold(r.Summary), summary.PreviewLength),
			Time:    summary.FormatTimestamp(r.CreatedAt, s.location),
			Kind:    summary.ClassifyVideo(r.SourceReference),
		}
	}

	s.render(c, "history", "History", gin.H{
		"Entries": entries,
	})
}

func (s *Server) handleView(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		s.redirect(c, "/history")
		return
	}

	records := s.store.ListSortedByTimeDescending(c.Request.Context())
	if index < 0 || index >= len(records) {
		s.redirect(c, "/history")
		return
	}
	record := records[index]

	if !s.store.SaveLatest(c.Request.Context(), record) {
		s.notices.Notify(notify.LevelError, "Failed to load summary data")
		s.redirect(c, "/history")
		return
	}

	language := record.LanguageName
	if language == "" {
		language = "english"
	}
	params := url.Values{}
	params.Set("url", record.SourceReference)
	params.Set("language", language)
	params.Set("fromGeneration", "true")
	s.redirect(c, "/summary?"+params.Encode())
}

func (s *Server) handleDelete(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		s.notices.Notify(notify.LevelError, "Failed to delete summary")
		s.redirect(c, "/history")
		return
	}

	if s.store.Remove(c.Request.Context(), index) {
		s.notices.Notify(notify.LevelSuccess, "Summary deleted successfully!")
	} else {
		s.notices.Notify(notify.LevelError, "Failed to delete summary")
	}
	s.redirect(c, "/history")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

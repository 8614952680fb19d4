package fake

import (
	"sync"

	"github.com/sevigo/threadr/schema"
)

// Source is a mock source plugin for testing purposes. Unless an article or
// error is configured, Extract passes the content through untouched.
type Source struct {
	mu              sync.Mutex
	PluginName      string
	AliasNames      []string
	SniffResult     bool
	ArticleToReturn *schema.Article
	ErrToReturn     error
	lastContent     string
	lastName        string
	extractCalls    int
}

// NewSource creates a new fake source plugin.
func NewSource(name string) *Source {
	return &Source{PluginName: name}
}

func (s *Source) Name() string {
	return s.PluginName
}

func (s *Source) Aliases() []string {
	return s.AliasNames
}

func (s *Source) CanHandle(format string) bool {
	if format == s.PluginName {
		return true
	}
	for _, alias := range s.AliasNames {
		if format == alias {
			return true
		}
	}
	return false
}

func (s *Source) Sniff(_ string) bool {
	return s.SniffResult
}

// Extract returns the pre-configured article or error and records the call.
func (s *Source) Extract(content string, name string) (schema.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastContent = content
	s.lastName = name
	s.extractCalls++

	if s.ErrToReturn != nil {
		return schema.Article{}, s.ErrToReturn
	}
	if s.ArticleToReturn != nil {
		return *s.ArticleToReturn, nil
	}

	return schema.NewArticle(content, nil), nil
}

// LastExtract returns the content and name of the most recent Extract call.
func (s *Source) LastExtract() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastContent, s.lastName
}

// ExtractCalls returns the number of times Extract was called.
func (s *Source) ExtractCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.extractCalls
}

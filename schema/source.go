package schema

type SourcePlugin interface {
	Name() string
	Aliases() []string
	CanHandle(format string) bool
	Sniff(content string) bool
	Extract(content string, name string) (Article, error)
}

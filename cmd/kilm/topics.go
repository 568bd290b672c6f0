package kilm

import (
	"embed"
	"io/fs"

	"github.com/arthur-debert/kilm/pkg/cobrax/topics"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicFiles embed.FS

// installTopics adds `kilm help <topic>` for the embedded documents
func installTopics(rootCmd *cobra.Command) error {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return err
	}
	_, err = topics.Install(rootCmd, sub, topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topics.NewGlamourRenderer(),
	})
	return err
}

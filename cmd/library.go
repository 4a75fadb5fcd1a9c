package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kezou/pacer/internal/domain"
	"github.com/kezou/pacer/internal/services"
)

var libraryAddTitle string

// libraryCmd represents the library command; bare "pacer library" lists.
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the document library",
	Long: `Add, list, search, and remove saved documents. Opening a library
document in the reader resumes from its last position.`,
	RunE: runLibraryList,
}

var libraryAddCmd = &cobra.Command{
	Use:   "add [file]",
	Short: "Save a document to the library",
	Long:  `Save a text file to the library. Use "-" to read from stdin, in which case --title is required.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var body string
		title := libraryAddTitle

		if args[0] == "-" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			if title == "" {
				return fmt.Errorf("--title is required when reading from stdin")
			}
			body = string(data)
		} else {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			body = string(data)
			if title == "" {
				base := filepath.Base(args[0])
				title = strings.TrimSuffix(base, filepath.Ext(base))
			}
		}

		doc, err := app.library.AddDocument(ctx, services.AddDocumentRequest{
			Title: title,
			Body:  body,
		})
		if err != nil {
			return fmt.Errorf("failed to add document: %w", err)
		}

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"id":         doc.ID,
				"title":      doc.Title,
				"word_count": doc.WordCount,
				"created_at": doc.CreatedAt.Format("2006-01-02T15:04:05"),
			})
		}

		fmt.Printf("✅ Saved: %s (%d words, ID: %s)\n", doc.Title, doc.WordCount, doc.ID[:8])
		return nil
	},
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List library documents",
	RunE:  runLibraryList,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [id or title]",
	Short: "Remove a document from the library",
	Long:  `Remove a document. Past reading sessions keep their history but lose the document link.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		doc, err := app.library.FindDocument(ctx, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to find document: %w", err)
		}

		if err := app.library.RemoveDocument(ctx, doc.ID); err != nil {
			return fmt.Errorf("failed to remove document: %w", err)
		}

		fmt.Printf("✅ Removed: %s\n", doc.Title)
		return nil
	},
}

var librarySearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Fuzzy-search library titles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		docs, err := app.library.SearchDocuments(ctx, strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("failed to search documents: %w", err)
		}

		if jsonOutput {
			return printJSON(documentListJSON(docs))
		}

		if len(docs) == 0 {
			fmt.Println("No matching documents.")
			return nil
		}

		printDocuments(docs)
		return nil
	},
}

func init() {
	libraryAddCmd.Flags().StringVarP(&libraryAddTitle, "title", "t", "", "Title for the document (default: file name)")

	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	libraryCmd.AddCommand(librarySearchCmd)
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	docs, err := app.library.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if jsonOutput {
		return printJSON(documentListJSON(docs))
	}

	if len(docs) == 0 {
		fmt.Println("The library is empty. Add a document with \"pacer library add <file>\".")
		return nil
	}

	fmt.Printf("📚 Library (%d):\n\n", len(docs))
	printDocuments(docs)
	return nil
}

func printDocuments(docs []*domain.Document) {
	for _, doc := range docs {
		fmt.Printf("  %s (ID: %s)\n", doc.Title, doc.ID[:8])
		fmt.Printf("     %d words · %d%% read · last read %s\n",
			doc.WordCount, readProgress(doc), lastReadLabel(doc))
	}
}

func documentListJSON(docs []*domain.Document) map[string]interface{} {
	list := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		entry := map[string]interface{}{
			"id":         doc.ID,
			"title":      doc.Title,
			"word_count": doc.WordCount,
			"progress":   readProgress(doc),
			"created_at": doc.CreatedAt.Format("2006-01-02T15:04:05"),
		}
		if doc.LastReadAt != nil {
			entry["last_read_at"] = doc.LastReadAt.Format("2006-01-02T15:04:05")
		}
		list = append(list, entry)
	}
	return map[string]interface{}{
		"documents": list,
		"count":     len(list),
	}
}

// readProgress returns how far through a document the saved cursor is,
// as a whole percentage.
func readProgress(doc *domain.Document) int {
	if doc.WordCount <= 0 || doc.LastCursor < 0 {
		return 0
	}
	pct := (doc.LastCursor + 1) * 100 / doc.WordCount
	if pct > 100 {
		pct = 100
	}
	return pct
}

func lastReadLabel(doc *domain.Document) string {
	if doc.LastReadAt == nil {
		return "never"
	}
	return doc.LastReadAt.Format("2006-01-02 15:04")
}

func printJSON(data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

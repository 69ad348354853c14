package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"productfinder-backend/internal/catalog"
	"productfinder-backend/internal/finder"
	"productfinder-backend/internal/quiz"
	"productfinder-backend/internal/recommend"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "finderctl",
		Short: "Product finder operator tools",
		Long: `finderctl runs the recommendation engine offline and checks catalog files
before they are deployed.

Examples:
  finderctl recommend --answers answers.json --lang en
  finderctl recommend --answers - --catalog catalog.yaml < answers.json
  finderctl catalog validate --file catalog.yaml`,
		SilenceUsage: true,
	}
	root.AddCommand(newRecommendCmd(), newCatalogCmd())
	return root
}

func newRecommendCmd() *cobra.Command {
	var (
		answersPath string
		lang        string
		catalogPath string
	)
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a product for a saved set of quiz answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(catalogPath)
			if err != nil {
				return err
			}
			answers, err := readAnswers(cmd.InOrStdin(), answersPath)
			if err != nil {
				return err
			}
			svc := finder.NewService(recommend.New(cat, quiz.DefaultNeeds()), "de")
			rec := svc.Recommend(answers, svc.Locale(lang))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
	cmd.Flags().StringVarP(&answersPath, "answers", "a", "", "Path to a JSON object of answers (use '-' for stdin)")
	cmd.Flags().StringVarP(&lang, "lang", "l", "de", "Output language: de or en")
	cmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "Catalog YAML file (default: embedded catalog)")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Catalog maintenance",
	}

	var file string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Validate a catalog YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d products, %d categories, %d features\n",
				len(cat.Products()), len(cat.Categories()), len(cat.Features()))
			return nil
		},
	}
	validate.Flags().StringVarP(&file, "file", "f", "", "Catalog YAML file (default: embedded catalog)")
	cmd.AddCommand(validate)
	return cmd
}

func readAnswers(stdin io.Reader, path string) (quiz.Answers, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	var answers quiz.Answers
	if err := json.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	if answers == nil {
		answers = quiz.Answers{}
	}
	return answers, nil
}

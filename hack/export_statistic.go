// Usage: REDINK_DEBUG_CONFIG_PATH=${PWD}/etc/debug-config.yaml go run hack/export_statistic.go
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/redink-lab/redink/dao"
	"github.com/redink-lab/redink/dao/model"
)

func main() {
	db := dao.GetDB()

	// Get all articles with related author and workspace
	var articles []model.Article
	// Include soft-deleted rows, archived rows come along by default
	if err := db.Preload("Author").Preload("Workspace").Preload("Tags").
		Unscoped().Order("id DESC").Find(&articles).Error; err != nil {
		panic(fmt.Errorf("failed to fetch articles: %w", err))
	}

	commentCounts, err := countByArticle(db, &model.Comment{})
	if err != nil {
		panic(fmt.Errorf("failed to count comments: %w", err))
	}
	approvalCounts, err := countByArticle(db, &model.Approval{})
	if err != nil {
		panic(fmt.Errorf("failed to count approvals: %w", err))
	}

	// Create CSV file
	file, err := os.Create("articles_export.csv")
	if err != nil {
		panic(fmt.Errorf("failed to create CSV file: %w", err))
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	headers := []string{
		"ID", "Title", "Slug", "WorkspaceID", "WorkspaceName", "AuthorID", "AuthorName",
		"Status", "CurrentVersion", "ViewCount", "Archived",
		"CreatedAt", "UpdatedAt", "LastEditedAt",
		"Tags", "CommentCount", "ApprovalCount",
	}
	if err := writer.Write(headers); err != nil {
		panic(fmt.Errorf("failed to write CSV header: %w", err))
	}

	// Write each article
	for i := range articles {
		article := &articles[i]
		record := articleToCSVRecord(article, commentCounts[article.ID], approvalCounts[article.ID])
		if err := writer.Write(record); err != nil {
			panic(fmt.Errorf("failed to write CSV record: %w", err))
		}
	}

	fmt.Println("Successfully exported articles to articles_export.csv")
}

type articleCount struct {
	ArticleID uint
	Total     int64
}

// countByArticle 统计每篇文章名下的行数，一次查询避免逐行计数
func countByArticle(db *gorm.DB, m any) (map[uint]int64, error) {
	var rows []articleCount
	err := db.Model(m).
		Select("article_id, COUNT(*) AS total").
		Group("article_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for i := range rows {
		counts[rows[i].ArticleID] = rows[i].Total
	}
	return counts, nil
}

func articleToCSVRecord(article *model.Article, comments, approvals int64) []string {
	// Format timestamps
	formatTime := func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(time.RFC3339)
	}

	lastEdited := ""
	if article.LastEditedAt != nil {
		lastEdited = formatTime(*article.LastEditedAt)
	}

	tagNames := make([]string, 0, len(article.Tags))
	for i := range article.Tags {
		tagNames = append(tagNames, article.Tags[i].Name)
	}

	return []string{
		fmt.Sprintf("%d", article.ID),
		article.Title,
		article.Slug,
		fmt.Sprintf("%d", article.WorkspaceID),
		article.Workspace.Name,
		fmt.Sprintf("%d", article.AuthorID),
		article.Author.Name,
		string(article.Status),
		fmt.Sprintf("%d", article.CurrentVersion),
		fmt.Sprintf("%d", article.ViewCount),
		fmt.Sprintf("%t", article.Archived),
		formatTime(article.CreatedAt),
		formatTime(article.UpdatedAt),
		lastEdited,
		strings.Join(tagNames, "|"),
		fmt.Sprintf("%d", comments),
		fmt.Sprintf("%d", approvals),
	}
}

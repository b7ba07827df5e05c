package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/workouts"
	"github.com/2beens/liftlog/internal/workouts/stats"
)

type daysRepo interface {
	ListDays(ctx context.Context, params workouts.ListDaysParams) ([]workouts.DaySessionRecord, error)
}

type statsReporter interface {
	Report(ctx context.Context, userID, timeframe, exercise string) (*stats.Report, error)
}

// contextService is what the tool handlers need, kept small for tests.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	GetStats(ctx context.Context, userID, timeframe, exercise string) (*stats.Report, error)
	ListDays(ctx context.Context, userID string, from, to time.Time) ([]workouts.DaySessionRecord, error)
}

type ContextService struct {
	schema   SchemaRepo
	days     daysRepo
	reporter statsReporter
}

func NewContextService(schemaRepo SchemaRepo, days daysRepo, reporter statsReporter) *ContextService {
	return &ContextService{
		schema:   schemaRepo,
		days:     days,
		reporter: reporter,
	}
}

// GetSchema returns the liftlog tables with their columns as markdown.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.GetColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# LiftLog DB Schema\n\nNo liftlog tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# LiftLog DB Schema\n\n")
	b.WriteString("Tables: ")
	b.WriteString(strings.Join(liftlogTables, ", "))
	b.WriteString(" (schema: public).\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func (s *ContextService) GetStats(ctx context.Context, userID, timeframe, exercise string) (*stats.Report, error) {
	return s.reporter.Report(ctx, userID, timeframe, exercise)
}

func (s *ContextService) ListDays(ctx context.Context, userID string, from, to time.Time) ([]workouts.DaySessionRecord, error) {
	return s.days.ListDays(ctx, workouts.ListDaysParams{
		UserID: userID,
		From:   &from,
		To:     &to,
	})
}

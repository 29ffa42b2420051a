package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/datagrid/internal/config"
	"github.com/xonecas/datagrid/internal/grid"
	"github.com/xonecas/datagrid/internal/store"
	"github.com/xonecas/datagrid/internal/tui"
)

// totalsRow is the pinned bottom summary: task count and mean progress.
type totalsRow struct {
	count       int
	avgProgress int
}

func main() {
	configPath := flag.String("config", "", "path to TOML config file")
	dbPath := flag.String("db", "", "path to the task database (overrides config)")
	debug := flag.Bool("debug", false, "write debug logs to the data directory")
	flag.Parse()

	if err := run(*configPath, *dbPath, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "datagrid: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, dbPath string, debug bool) error {
	if err := setupLogging(debug); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if dbPath == "" {
		dbPath = cfg.Data.DBPath
	}
	if dbPath == "" {
		dir, err := config.EnsureDataDir()
		if err != nil {
			return err
		}
		dbPath = filepath.Join(dir, "tasks.db")
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctrl, err := buildGrid(st, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		tui.New(ctrl, cfg),
		tea.WithFilter(tui.MouseEventFilter),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// setupLogging routes the global zerolog logger to a file under the
// data directory, or disables it entirely. The TUI owns the terminal.
func setupLogging(debug bool) error {
	if !debug {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return nil
	}
	dir, err := config.EnsureDataDir()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0640)
	if err != nil {
		return err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	return nil
}

// buildGrid assembles the controller around the task store: columns,
// grouping, the totals summary and the persistence callbacks.
func buildGrid(st *store.Store, cfg *config.Config) (*grid.Controller, error) {
	groupBy := cfg.Grid.GroupBy
	expanded := make(map[string]struct{})

	var sortKey string
	var sortDesc bool

	// ctrl is captured by the callbacks below; assigned after New.
	var ctrl *grid.Controller

	reload := func() error {
		tasks, err := st.Tasks(sortKey, sortDesc)
		if err != nil {
			return err
		}
		rows := make([]grid.Row, len(tasks))
		totals := totalsRow{count: len(tasks)}
		for i, t := range tasks {
			rows[i] = t
			totals.avgProgress += t.Progress
		}
		if totals.count > 0 {
			totals.avgProgress /= totals.count
		}
		if len(groupBy) > 0 {
			rows = grid.FlattenGroups(rows, groupLevels(groupBy), expanded)
		}
		ctrl.SetRows(rows, nil, []grid.Row{&totals})
		return nil
	}

	dir := grid.LeftToRight
	if cfg.Grid.DirectionOrDefault() == "rtl" {
		dir = grid.RightToLeft
	}

	ctrl = grid.New(grid.Options{
		Columns:     taskColumns(),
		GroupedKeys: groupBy,
		RowHeight:   grid.FixedRowHeight(cfg.Grid.RowHeightOrDefault()),
		RowKey: func(row grid.Row) string {
			if t, ok := row.(*store.Task); ok {
				return t.Key()
			}
			return ""
		},
		OnRowsChange: func(rows []grid.Row, ev grid.RowsChangeEvent) {
			for _, idx := range ev.Indexes {
				t, ok := rows[idx].(*store.Task)
				if !ok {
					continue
				}
				if err := st.SaveTask(t); err != nil {
					log.Error().Err(err).Int64("task", t.ID).Msg("save failed")
				}
			}
			if err := reload(); err != nil {
				log.Error().Err(err).Msg("reload after edit failed")
			}
		},
		OnSortChange: func(key string, sd grid.SortDirection) {
			sortKey = key
			sortDesc = sd == grid.SortDesc
			if sd == grid.SortNone {
				sortKey = ""
			}
			if err := reload(); err != nil {
				log.Error().Err(err).Msg("reload after sort failed")
			}
		},
		OnGroupToggle: func(groupID string, isOpen bool) {
			if isOpen {
				expanded[groupID] = struct{}{}
			} else {
				delete(expanded, groupID)
			}
			if err := reload(); err != nil {
				log.Error().Err(err).Msg("reload after group toggle failed")
			}
		},
		Direction:             dir,
		NavMode:               grid.NavClamp,
		RangeBoundaryCol:      -1,
		DisableVirtualization: !cfg.Grid.VirtualizationEnabled(),
	})

	if err := reload(); err != nil {
		return nil, err
	}
	return ctrl, nil
}

func groupLevels(keys []string) []grid.GroupBy {
	levels := make([]grid.GroupBy, 0, len(keys))
	for _, key := range keys {
		key := key
		levels = append(levels, grid.GroupBy{
			Key: key,
			Value: func(row grid.Row) string {
				t, ok := row.(*store.Task)
				if !ok {
					return ""
				}
				switch key {
				case "owner":
					return t.Owner
				case "dept":
					return t.Dept
				case "status":
					return t.Status
				default:
					return ""
				}
			},
		})
	}
	return levels
}

func taskColumns() []grid.Column {
	text := func(get func(*store.Task) string, set func(*store.Task, string)) (func(any) string, func(any, string) any) {
		format := func(row any) string {
			switch r := row.(type) {
			case *store.Task:
				return get(r)
			}
			return ""
		}
		apply := func(row any, value string) any {
			t, ok := row.(*store.Task)
			if !ok {
				return row
			}
			next := *t
			set(&next, value)
			return &next
		}
		return format, apply
	}

	titleFmt, titleSet := text(
		func(t *store.Task) string { return t.Title },
		func(t *store.Task, v string) { t.Title = v })
	ownerFmt, ownerSet := text(
		func(t *store.Task) string { return t.Owner },
		func(t *store.Task, v string) { t.Owner = v })
	deptFmt, _ := text(
		func(t *store.Task) string { return t.Dept },
		func(t *store.Task, v string) { t.Dept = v })
	statusFmt, statusSet := text(
		func(t *store.Task) string { return t.Status },
		func(t *store.Task, v string) { t.Status = v })

	return []grid.Column{
		{
			Key: "title", Name: "Title",
			Width: grid.Auto(), MinWidth: 12,
			Resizable: true, Sortable: true, Editable: true,
			FormatValue: func(row any) string {
				if tr, ok := row.(*totalsRow); ok {
					return fmt.Sprintf("%d tasks", tr.count)
				}
				return titleFmt(row)
			},
			SetValue: titleSet,
		},
		{
			Key: "owner", Name: "Owner",
			Width: grid.Fixed(10), Frozen: true,
			Resizable: true, Sortable: true, Editable: true,
			FormatValue: ownerFmt, SetValue: ownerSet,
		},
		{
			Key: "dept", Name: "Dept",
			Width:     grid.Fixed(10),
			Resizable: true, Sortable: true,
			FormatValue: deptFmt,
		},
		{
			Key: "status", Name: "Status",
			Width:     grid.Fixed(10),
			Resizable: true, Sortable: true, Editable: true,
			FormatValue: statusFmt, SetValue: statusSet,
		},
		{
			Key: "priority", Name: "Priority",
			Width:     grid.Fixed(10),
			Resizable: true, Sortable: true, Editable: true,
			FormatValue: func(row any) string {
				if t, ok := row.(*store.Task); ok {
					return "P" + strconv.Itoa(t.Priority)
				}
				return ""
			},
			SetValue: func(row any, value string) any {
				t, ok := row.(*store.Task)
				if !ok {
					return row
				}
				n, err := strconv.Atoi(value)
				if err != nil {
					return row
				}
				next := *t
				next.Priority = n
				return &next
			},
		},
		{
			Key: "progress", Name: "Progress",
			Width: grid.Percent(15), MinWidth: 8,
			Resizable: true, Sortable: true, Editable: true,
			FormatValue: func(row any) string {
				switch r := row.(type) {
				case *store.Task:
					return strconv.Itoa(r.Progress) + "%"
				case *totalsRow:
					return "avg " + strconv.Itoa(r.avgProgress) + "%"
				}
				return ""
			},
			SetValue: func(row any, value string) any {
				t, ok := row.(*store.Task)
				if !ok {
					return row
				}
				n, err := strconv.Atoi(value)
				if err != nil || n < 0 || n > 100 {
					return row
				}
				next := *t
				next.Progress = n
				return &next
			},
		},
	}
}

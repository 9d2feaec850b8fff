package notes

import (
	"fmt"
	"time"

	"github.com/tallyapp/tally/internal/cli"
	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/utils"
)

type NoteCmd struct {
	Add    NoteAddCmd    `cmd:"" help:"Attach a note to a habit for a day."`
	List   NoteListCmd   `cmd:"" help:"List notes for a habit or a day."`
	Delete NoteDeleteCmd `cmd:"" help:"Delete a note."`
}

type NoteAddCmd struct {
	Habit   string `arg:"" help:"Habit name or id."`
	Content string `arg:"" help:"Note text."`
	Date    string `help:"Day in YYYY-MM-DD format (default: today)." default:""`
}

func (c *NoteAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	h, err := ctx.Tracker.Habit(c.Habit)
	if err != nil {
		return err
	}

	n, err := ctx.Tracker.AddNote(models.Note{
		HabitID:   h.ID,
		Day:       c.Date,
		Content:   c.Content,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}
	fmt.Printf("✓ Added note to %q for %s\n", h.Name, n.Day)
	return nil
}

type NoteListCmd struct {
	Habit string `help:"Habit name or id."`
	Date  string `help:"Day in YYYY-MM-DD format."`
	Days  int    `help:"Trailing days to include when listing by habit." default:"30"`
}

func (c *NoteListCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	var notes []models.Note
	switch {
	case c.Date != "":
		var err error
		notes, err = ctx.Tracker.NotesForDay(c.Date)
		if err != nil {
			return err
		}
	case c.Habit != "":
		h, err := ctx.Tracker.Habit(c.Habit)
		if err != nil {
			return err
		}
		start := ""
		if c.Days > 0 {
			start = utils.AddDays(ctx.Tracker.Today(), -(c.Days - 1))
		}
		notes, err = ctx.Tracker.NotesForHabit(h.ID, start, "")
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("provide --habit or --date")
	}

	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return nil
	}
	for _, n := range notes {
		fmt.Printf("%s  %s\n    %s\n", n.Day, n.ID[:8], n.Content)
	}
	return nil
}

type NoteDeleteCmd struct {
	ID string `arg:"" help:"Note id (a unique prefix is enough)."`
}

func (c *NoteDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}

	// Resolve a prefix against today's and recent notes per habit.
	id := c.ID
	if len(id) < 36 {
		resolved, err := resolveNotePrefix(ctx, id)
		if err != nil {
			return err
		}
		id = resolved
	}

	if err := ctx.Tracker.DeleteNote(id); err != nil {
		return err
	}
	fmt.Println("Deleted note")
	return nil
}

func resolveNotePrefix(ctx *cli.Context, prefix string) (string, error) {
	var match string
	for _, h := range ctx.Tracker.Habits(true) {
		notes, err := ctx.Tracker.NotesForHabit(h.ID, "", "")
		if err != nil {
			return "", err
		}
		for _, n := range notes {
			if len(n.ID) >= len(prefix) && n.ID[:len(prefix)] == prefix {
				if match != "" && match != n.ID {
					return "", fmt.Errorf("note id prefix %q is ambiguous", prefix)
				}
				match = n.ID
			}
		}
	}
	if match == "" {
		return "", fmt.Errorf("no note matching id prefix %q", prefix)
	}
	return match, nil
}

package lectures

import (
	"fmt"
	"strings"

	"github.com/julianstephens/lectern/internal/cli"
	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/timetable"
)

type RoomsFreeCmd struct {
	WhenFlags
	Floor *int   `help:"Only rooms on this floor."`
	Type  string `help:"Only rooms of this type (any, lab, classroom)." enum:"any,lab,classroom" default:"any"`
}

func (c *RoomsFreeCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	day, t, err := cli.When(sess, c.Day, c.Time)
	if err != nil {
		return err
	}

	filter := engine.RoomFilter{Floor: c.Floor}
	switch c.Type {
	case "lab":
		filter.Type = models.RoomTypeLab
	case "classroom":
		filter.Type = models.RoomTypeClassroom
	}

	res := sess.EmptyRooms(day, t, filter)
	ctx.Printf("Free rooms on %s at %s:\n", day, t)
	if len(res.Available) == 0 {
		ctx.Println("  none")
	}
	for _, r := range res.Available {
		ctx.Printf("  %-8s floor %d  %s\n", r.ID, r.Floor, r.Type)
	}

	if len(res.Ambiguous) > 0 {
		store := sess.Engine().Store()
		ctx.Println("\nMight be in use:")
		for _, l := range res.Ambiguous {
			ctx.Printf("  %s  (%s)\n", cli.FormatLecture(store, l), strings.Join(l.Divisions, ", "))
		}
	}
	return nil
}

type RoomStatusCmd struct {
	WhenFlags
	Room string `arg:"" help:"Room id."`
}

func (c *RoomStatusCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	day, t, err := cli.When(sess, c.Day, c.Time)
	if err != nil {
		return err
	}

	res := sess.RoomStatus(c.Room, day, t)
	store := sess.Engine().Store()
	switch res.Status {
	case engine.RoomNotFound:
		return fmt.Errorf("room not found: %s", c.Room)
	case engine.RoomAvailable:
		ctx.Printf("%s is free on %s at %s.\n", c.Room, day, t)
	case engine.RoomOccupied:
		ctx.Printf("%s is in use: %s\n", c.Room, cli.FormatLecture(store, *res.Lecture))
	case engine.RoomPotentiallyOccupied:
		ctx.Printf("%s might be in use: %s\n", c.Room, cli.FormatLecture(store, *res.Lecture))
	}
	return nil
}

type TeacherCmd struct {
	WhenFlags
	Query string `arg:"" help:"Teacher id or name."`
}

func (c *TeacherCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	day, t, err := cli.When(sess, c.Day, c.Time)
	if err != nil {
		return err
	}

	res := sess.TeacherLocation(c.Query, day, t)
	store := sess.Engine().Store()
	switch res.Status {
	case engine.TeacherNotFound:
		return fmt.Errorf("no teacher matches %q", c.Query)
	case engine.TeacherOutsideHours:
		ctx.Printf("%s: outside college hours.\n", res.Teacher.Name)
	case engine.TeacherInLecture:
		ctx.Printf("%s is teaching: %s\n", res.Teacher.Name, cli.FormatLecture(store, *res.Lecture))
	case engine.TeacherInCabin:
		cabin := res.CabinRoomID
		if cabin == "" {
			cabin = "N/A"
		}
		ctx.Printf("%s should be in their cabin (%s).\n", res.Teacher.Name, cabin)
	}
	return nil
}

type TeachersCmd struct{}

func (c *TeachersCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	for _, teacher := range sess.Engine().Store().Teachers() {
		ctx.Printf("  %-8s %-24s cabin %s\n", teacher.ID, teacher.Name, timetable.RoomInfo(nonEmpty(teacher.CabinRoomID)))
	}
	return nil
}

func nonEmpty(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}

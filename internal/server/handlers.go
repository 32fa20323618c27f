package server

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/julianstephens/lectern/internal/engine"
	"github.com/julianstephens/lectern/internal/models"
	"github.com/julianstephens/lectern/internal/session"
	"github.com/julianstephens/lectern/internal/utils"
	"github.com/julianstephens/lectern/internal/validation"
)

type choiceRequest struct {
	Value string `json:"value" validate:"required"`
}

type profileRequest struct {
	Division      string `json:"division" validate:"required"`
	LabBatch      string `json:"labBatch"`
	TutorialBatch string `json:"tutorialBatch"`
}

// when reads ?day= and ?time=, falling back to the session clock for
// whichever is missing.
func (s *Server) when(c *fiber.Ctx) (models.Day, string, error) {
	day, t := s.sess.Now()
	if raw := c.Query("day"); raw != "" {
		d, err := models.ParseDay(raw)
		if err != nil {
			return "", "", fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		day = d
	}
	if raw := c.Query("time"); raw != "" {
		normalized, err := utils.NormalizeTime(raw)
		if err != nil {
			return "", "", fiber.NewError(fiber.StatusBadRequest, "invalid time, use HH:MM")
		}
		t = normalized
	}
	return day, t, nil
}

func (s *Server) handleStatus(findNext bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, t, err := s.when(c)
		if err != nil {
			return err
		}
		return JsonOK(c, "", s.sess.Status(day, t, findNext))
	}
}

func (s *Server) handleSchedule(c *fiber.Ctx) error {
	raw := c.Query("day")
	if raw == "" {
		return JsonOK(c, "", s.sess.Week())
	}
	day, err := models.ParseDay(raw)
	if err != nil {
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return JsonOK(c, "", s.sess.Day(day))
}

func (s *Server) handleDivisions(c *fiber.Ctx) error {
	return JsonOK(c, "", s.sess.Engine().Store().Divisions())
}

func (s *Server) handleEmptyRooms(c *fiber.Ctx) error {
	day, t, err := s.when(c)
	if err != nil {
		return err
	}
	var filter engine.RoomFilter
	if raw := c.Query("floor"); raw != "" {
		floor, err := strconv.Atoi(raw)
		if err != nil {
			return JsonError(c, fiber.StatusBadRequest, "floor must be a number")
		}
		filter.Floor = &floor
	}
	switch strings.ToLower(c.Query("type")) {
	case "":
	case "lab":
		filter.Type = models.RoomTypeLab
	case "classroom":
		filter.Type = models.RoomTypeClassroom
	default:
		return JsonError(c, fiber.StatusBadRequest, "type must be Lab or Classroom")
	}
	return JsonOK(c, "", s.sess.EmptyRooms(day, t, filter))
}

func (s *Server) handleRoomStatus(c *fiber.Ctx) error {
	day, t, err := s.when(c)
	if err != nil {
		return err
	}
	res := s.sess.RoomStatus(c.Params("id"), day, t)
	if res.Status == engine.RoomNotFound {
		return JsonError(c, fiber.StatusNotFound, "room not found")
	}
	return JsonOK(c, "", res)
}

func (s *Server) handleTeachers(c *fiber.Ctx) error {
	return JsonOK(c, "", s.sess.Engine().Store().Teachers())
}

func (s *Server) handleTeacherLocation(c *fiber.Ctx) error {
	day, t, err := s.when(c)
	if err != nil {
		return err
	}
	res := s.sess.TeacherLocation(c.Params("id"), day, t)
	if res.Status == engine.TeacherNotFound {
		return JsonError(c, fiber.StatusNotFound, "teacher not found")
	}
	return JsonOK(c, "", res)
}

func (s *Server) handleGetChoice(c *fiber.Ctx) error {
	opts, err := s.sess.RequestResolution(c.Params("group"))
	if err != nil {
		return choiceError(c, err)
	}
	return JsonOK(c, "", opts)
}

func (s *Server) handlePutChoice(c *fiber.Ctx) error {
	var req choiceRequest
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return JsonValidationError(c, validation.FieldMessages(err))
	}
	profile, err := s.sess.ApplyChoice(c.Params("group"), req.Value)
	if err != nil {
		return choiceError(c, err)
	}
	return JsonOK(c, "choice saved", profile)
}

func (s *Server) handleDeleteChoice(c *fiber.Ctx) error {
	profile, err := s.sess.RevokeChoice(c.Params("group"))
	if err != nil {
		return choiceError(c, err)
	}
	return JsonOK(c, "choice cleared", profile)
}

func choiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, session.ErrInvalidGroup):
		return JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrEmptyValue), errors.Is(err, session.ErrUnknownOption):
		return JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	return err
}

func (s *Server) handleGetProfile(c *fiber.Ctx) error {
	return JsonOK(c, "", s.sess.Profile())
}

func (s *Server) handlePutProfile(c *fiber.Ctx) error {
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return JsonValidationError(c, validation.FieldMessages(err))
	}
	profile, err := s.sess.SaveDetails(req.Division, req.LabBatch, req.TutorialBatch)
	switch {
	case errors.Is(err, session.ErrUnknownDivision), errors.Is(err, session.ErrDivisionRequired):
		return JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case err != nil:
		return err
	}
	return JsonOK(c, "profile saved", profile)
}

func (s *Server) handleDeleteProfile(c *fiber.Ctx) error {
	if err := s.sess.Reset(); err != nil {
		return err
	}
	return JsonOK(c, "profile reset", nil)
}

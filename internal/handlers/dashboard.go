package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"workday-admin/internal/models"
	"workday-admin/internal/timeapi"
)

const defaultLimit = 20

// pageLimits are the page sizes offered by the per-page selector.
var pageLimits = []int{10, 20, 50}

type workdayRow struct {
	Date   string
	Start  string
	End    string
	Work   string
	Break  string
	Breaks []string
}

type dashboardData struct {
	Title        string
	Employees    []models.User
	SelectedID   string
	SelectedName string
	Rows         []workdayRow
	Total        int
	Page         int
	TotalPages   int
	HasPrev      bool
	HasNext      bool
	PrevPage     int
	NextPage     int
	Limit        int
	Limits       []int
	From         string
	To           string
	Error        string
}

// Dashboard renders the employee sidebar and, when an employee is
// selected via the user query param, one page of their workdays.
// Employee links omit the page param, so selecting an employee always
// lands on page 1 under the current filters.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	tok := token(c)

	data := dashboardData{
		Title:  "Admin Dashboard",
		Page:   queryInt(c, "page", 1),
		Limit:  queryLimit(c),
		Limits: pageLimits,
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
	if data.Page < 1 {
		data.Page = 1
	}

	users, err := h.api.Users(c.UserContext(), tok)
	if err != nil {
		if errors.Is(err, timeapi.ErrUnauthorized) {
			return h.expireSession(c)
		}
		h.log.Error().Err(err).Msg("load employees failed")
		data.Error = errorMessage(err)
		data.TotalPages = 1
		return c.Render("dashboard", data, "layout")
	}
	data.Employees = users

	data.SelectedID = c.Query("user")
	for _, u := range users {
		if u.ID == data.SelectedID {
			data.SelectedName = u.Name
			break
		}
	}

	if data.SelectedID != "" {
		page, err := h.api.Workdays(c.UserContext(), tok, timeapi.WorkdayQuery{
			UserID: data.SelectedID,
			From:   data.From,
			To:     data.To,
			Page:   data.Page,
			Limit:  data.Limit,
		})
		if err != nil {
			if errors.Is(err, timeapi.ErrUnauthorized) {
				return h.expireSession(c)
			}
			h.log.Error().Err(err).Str("user", data.SelectedID).Msg("load workdays failed")
			data.Error = errorMessage(err)
		} else {
			data.Total = page.Total
			data.Rows = buildRows(page.Items)
		}
	}

	data.TotalPages = totalPages(data.Total, data.Limit)
	data.HasPrev = data.Page > 1
	data.HasNext = data.Page < data.TotalPages
	data.PrevPage = data.Page - 1
	data.NextPage = data.Page + 1

	return c.Render("dashboard", data, "layout")
}

// Export streams the upstream CSV for the selected employee as a file
// download.
func (h *Handler) Export(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return c.Redirect("/")
	}

	body, err := h.api.ExportCSV(c.UserContext(), token(c), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		if errors.Is(err, timeapi.ErrUnauthorized) {
			return h.expireSession(c)
		}
		h.log.Error().Err(err).Str("user", userID).Msg("csv export failed")
		return fiber.NewError(fiber.StatusBadGateway, "export failed")
	}

	// The stream is read after this handler returns; fasthttp closes it
	// once the response is written, so no Close here.
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="workdays_`+userID+`.csv"`)
	return c.SendStream(body)
}

func buildRows(items []models.Workday) []workdayRow {
	rows := make([]workdayRow, 0, len(items))
	for _, wd := range items {
		row := workdayRow{
			Date:  wd.Date,
			Start: formatClock(wd.StartTime),
			End:   formatClock(wd.EndTime),
			Work:  formatDuration(wd.TotalWorkTime),
			Break: formatDuration(wd.TotalBreakTime),
		}
		for _, b := range wd.Breaks {
			row.Breaks = append(row.Breaks, formatBreak(b))
		}
		rows = append(rows, row)
	}
	return rows
}

func queryInt(c *fiber.Ctx, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func queryLimit(c *fiber.Ctx) int {
	v := queryInt(c, "limit", defaultLimit)
	for _, l := range pageLimits {
		if v == l {
			return v
		}
	}
	return defaultLimit
}

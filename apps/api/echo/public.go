package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smashclub/backend/core/achievement"
	"github.com/smashclub/backend/core/athlete"
	"github.com/smashclub/backend/core/program"
	"github.com/smashclub/backend/core/settings"
)

const publicAchievementsLimit = 10

type publicApi struct {
	settings     *settings.Service
	programs     *program.Service
	athletes     *athlete.Service
	achievements *achievement.Service
}

// registerPublicAPI registers the endpoints of the public club website. They need no authentication.
func registerPublicAPI(g *echo.Group, deps Deps) {
	api := publicApi{
		settings:     deps.SettingsSvc,
		programs:     deps.ProgramSvc,
		athletes:     deps.AthleteSvc,
		achievements: deps.AchievementSvc,
	}

	pg := g.Group("/public")
	pg.GET("/club", api.club)
	pg.GET("/programs", api.programList)
	pg.GET("/achievements", api.achievementList)
}

func (api *publicApi) club(ctx echo.Context) error {
	s, err := api.settings.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}
	return ctx.JSON(http.StatusOK, s.Public())
}

func (api *publicApi) programList(ctx echo.Context) error {
	programs, err := api.programs.Query(ctx.Request().Context(), nil, nil)
	if err != nil {
		return errors.Wrap(err, "querying programs")
	}
	return ctx.JSON(http.StatusOK, programs)
}

type publicAchievement struct {
	achievement.Achievement
	AthleteName string `json:"athlete_name"`
}

func (api *publicApi) achievementList(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	recent, err := api.achievements.Recent(rctx, nil, publicAchievementsLimit)
	if err != nil {
		return errors.Wrap(err, "querying achievements")
	}

	ids := make([]string, 0, len(recent))
	for _, a := range recent {
		ids = append(ids, a.AthleteID)
	}
	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		athletes, err := api.athletes.Query(rctx, &athlete.QueryFilter{IDs: ids}, nil)
		if err != nil {
			return errors.Wrap(err, "querying athletes")
		}
		for _, ath := range athletes {
			names[ath.ID] = ath.Name
		}
	}

	res := make([]publicAchievement, 0, len(recent))
	for _, a := range recent {
		res = append(res, publicAchievement{Achievement: a, AthleteName: names[a.AthleteID]})
	}
	return ctx.JSON(http.StatusOK, res)
}

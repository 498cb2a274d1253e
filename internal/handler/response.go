package handler

import (
	"net/http"
	"strconv"

	repo "takeout/internal/repository"
	"takeout/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

//middleware.AuthJWT が c.Set("user_id", int64) した値を取り出す

func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get("user_id")
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

// page/page_sizeクエリを読む。値が無ければNormalizeに任せる。
func pageQueryFromRequest(c echo.Context) (repo.PageQuery, bool) {
	var q repo.PageQuery

	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return repo.PageQuery{}, false
		}
		q.Page = p
	}
	if v := c.QueryParam("page_size"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return repo.PageQuery{}, false
		}
		q.PageSize = s
	}

	return q.Normalize(), true
}

func parseIDParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// /:status パスパラメータ（0/1の切替系で使う）
func parseStatusParam(c echo.Context) (int, bool) {
	n, err := strconv.Atoi(c.Param("status"))
	if err != nil {
		return 0, false
	}
	return n, true
}

package app

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/showseat/booking-api/api"
	"github.com/showseat/booking-api/internal/domain"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	params := api.GetMoviesParams{
		Page:     app.readIntQuery(r, "page"),
		PageSize: app.readIntQuery(r, "pageSize"),
	}

	if term := r.URL.Query().Get("term"); term != "" {
		params.Term = &term
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := toMovieFilters(params)

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   toMovieSummaries(movies),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowsByMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	_, err = app.movieRepo.GetById(r.Context(), movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	shows, err := app.showRepo.GetAllByMovieId(r.Context(), movieID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ShowListResponse{
		Shows: toShowSummaries(shows),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toMovieFilters(params api.GetMoviesParams) domain.MovieFilters {
	filters := domain.MovieFilters{
		Pagination: domain.Pagination{
			Page:     DefaultPage,
			PageSize: DefaultPageSize,
		},
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}

	return filters
}

func toMovieSummaries(movies []*domain.Movie) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))

	for i, movie := range movies {
		summary := api.MovieSummary{
			Id:              movie.ID,
			Title:           movie.Title,
			Description:     movie.Description,
			DurationMinutes: movie.DurationMinutes,
			PosterUrl:       movie.PosterUrl,
		}

		if movie.Rating.Valid {
			if rating, err := movie.Rating.Float64Value(); err == nil && rating.Valid {
				summary.Rating = &rating.Float64
			}
		}

		summaries[i] = summary
	}

	return summaries
}

func toShowSummaries(shows []domain.Show) []api.ShowSummary {
	summaries := make([]api.ShowSummary, len(shows))

	for i, show := range shows {
		summaries[i] = api.ShowSummary{
			Id:         show.ID,
			MovieId:    show.MovieID,
			MovieTitle: show.MovieTitle,
			ScreenName: show.ScreenName,
			StartTime:  show.StartTime,
			TotalSeats: show.TotalSeats,
			BasePrice:  decimal.NewFromFloat(show.BasePrice),
		}
	}

	return summaries
}

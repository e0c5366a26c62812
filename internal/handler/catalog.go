package handler

import "net/http"

// The catalog endpoints are unauthenticated: the content tables are
// static and public, and the landing page renders them before sign-in.

func HandleListSpecializations(w http.ResponseWriter, _ *http.Request, deps *Deps) {
	all := deps.Catalog.Specializations.All()
	views := make([]specializationView, 0, len(all))
	for _, s := range all {
		views = append(views, newSpecializationView(s))
	}
	writeJSON(w, http.StatusOK, views)
}

func HandleListAchievements(w http.ResponseWriter, _ *http.Request, deps *Deps) {
	all := deps.Catalog.Achievements.All()
	views := make([]achievementView, 0, len(all))
	for _, a := range all {
		views = append(views, newAchievementView(a))
	}
	writeJSON(w, http.StatusOK, views)
}

func HandleListItems(w http.ResponseWriter, _ *http.Request, deps *Deps) {
	all := deps.Catalog.Items.All()
	views := make([]itemView, 0, len(all))
	for _, i := range all {
		views = append(views, newItemView(i))
	}
	writeJSON(w, http.StatusOK, views)
}

package api

import (
	"github.com/dmitrymomot/fieldguard/handler"
)

type policyView struct {
	Name  string `json:"name"`
	Allow string `json:"allow"`
}

type policiesResponse struct {
	Policies []policyView `json:"policies"`
}

func (a *API) listPolicies(ctx handler.Context, _ struct{}) handler.Response {
	policies := a.registry.Policies()
	out := policiesResponse{Policies: make([]policyView, 0, len(policies))}
	for _, p := range policies {
		out.Policies = append(out.Policies, policyView{Name: p.Name(), Allow: p.CharClass()})
	}
	return handler.JSON(out)
}

package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jansunwai/models"
	"jansunwai/service"
)

func TestExtractTaggedRoles(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []models.Role
	}{
		{
			name: "single tag",
			text: "Please look into this @Collector Team",
			want: []models.Role{models.RoleCollectorTeam},
		},
		{
			name: "longest name wins",
			text: "Escalating to @Collector Team Advanced for review",
			want: []models.Role{models.RoleCollectorTeamAdvanced},
		},
		{
			name: "multiple tags in appearance order",
			text: "@Department Team please coordinate with @District Collector",
			want: []models.Role{models.RoleDepartmentTeam, models.RoleDistrictCollector},
		},
		{
			name: "duplicates collapse to first appearance",
			text: "@MLA Gondia and again @MLA Gondia and @Collector Team",
			want: []models.Role{models.RoleMLAGondia, models.RoleCollectorTeam},
		},
		{
			name: "no partial word match",
			text: "Forwarded to @District Collectorate office",
			want: nil,
		},
		{
			name: "unknown tags are ignored",
			text: "cc @Mayor and @Nobody",
			want: nil,
		},
		{
			name: "citizens are not taggable",
			text: "thanks @User",
			want: nil,
		},
		{
			name: "plain text",
			text: "The road near the bus stand is flooded",
			want: nil,
		},
		{
			name: "email addresses do not trip the extractor",
			text: "contact collector@gondia.gov.in for details",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.ExtractTaggedRoles(tt.text))
		})
	}
}

package search

import (
	"github.com/Starling-Strategy/stonesoup/stonesoup/members"
	"github.com/Starling-Strategy/stonesoup/stonesoup/stories"
)

// reports whether no constraint is set
func (f *Filters) Empty() bool {
	if f == nil {
		return true
	}
	return len(f.Skills) == 0 && len(f.Locations) == 0 && len(f.Companies) == 0 &&
		len(f.Tags) == 0 && len(f.StoryTypes) == 0 &&
		!f.AvailableMembersOnly && !f.VerifiedMembersOnly && !f.AIGeneratedOnly &&
		f.MinExperience == nil && f.MaxExperience == nil &&
		f.MinRate == nil && f.MaxRate == nil &&
		f.DateFrom == nil && f.DateTo == nil
}

// projects the member-relevant constraints onto the members store filter
func (f *Filters) memberFilter() members.Filter {
	if f == nil {
		return members.Filter{}
	}
	return members.Filter{
		Skills:        f.Skills,
		Locations:     f.Locations,
		Companies:     f.Companies,
		AvailableOnly: f.AvailableMembersOnly,
		VerifiedOnly:  f.VerifiedMembersOnly,
		MinExperience: f.MinExperience,
		MaxExperience: f.MaxExperience,
		MinRate:       f.MinRate,
		MaxRate:       f.MaxRate,
	}
}

// projects the story-relevant constraints onto the stories store filter
func (f *Filters) storyFilter() stories.Filter {
	if f == nil {
		return stories.Filter{}
	}
	return stories.Filter{
		Types:           f.StoryTypes,
		Tags:            f.Tags,
		Skills:          f.Skills,
		AIGeneratedOnly: f.AIGeneratedOnly,
		DateFrom:        f.DateFrom,
		DateTo:          f.DateTo,
	}
}

// names the constraints in effect, for response metadata
func (f *Filters) applied() []string {
	names := []string{}
	if f == nil {
		return names
	}
	if len(f.Skills) > 0 {
		names = append(names, "skills")
	}
	if len(f.Locations) > 0 {
		names = append(names, "locations")
	}
	if len(f.Companies) > 0 {
		names = append(names, "companies")
	}
	if len(f.Tags) > 0 {
		names = append(names, "tags")
	}
	if len(f.StoryTypes) > 0 {
		names = append(names, "story_types")
	}
	if f.AvailableMembersOnly {
		names = append(names, "available_members_only")
	}
	if f.VerifiedMembersOnly {
		names = append(names, "verified_members_only")
	}
	if f.AIGeneratedOnly {
		names = append(names, "ai_generated_only")
	}
	if f.MinExperience != nil || f.MaxExperience != nil {
		names = append(names, "experience")
	}
	if f.MinRate != nil || f.MaxRate != nil {
		names = append(names, "rate")
	}
	if f.DateFrom != nil || f.DateTo != nil {
		names = append(names, "date_range")
	}
	return names
}

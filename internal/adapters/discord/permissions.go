package discord

import (
	"slices"

	"github.com/bwmarrin/discordgo"
)

// isAdmin: dueño del guild, permiso Administrator o alguno de los roles configurados.
func (r *Router) isAdmin(s *discordgo.Session, ic *discordgo.InteractionCreate) bool {
	if ic.Member == nil {
		return false
	}
	if ic.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	if g, _ := s.State.Guild(ic.GuildID); g != nil && ic.Member.User != nil && ic.Member.User.ID == g.OwnerID {
		return true
	}
	return hasAnyRole(ic.Member.Roles, r.adminRoleIDs)
}

func hasAnyRole(have, want []string) bool {
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}

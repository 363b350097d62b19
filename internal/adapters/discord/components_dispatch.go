// Botones de los mensajes públicos.

package discord

func (r *Router) componentTable() map[ComponentKey]Component {
	return map[ComponentKey]Component{
		StandingsRefresh: {Edit: true, Handler: r.standings},
		DraftStatusCheck: {Handler: r.draftStatus},
	}
}

package history

import (
	"fmt"
	"strings"
)

// Locale selects the language history messages are generated in.
type Locale string

const (
	LocalePT Locale = "pt"
	LocaleEN Locale = "en"
)

// baseMessages maps (locale, action) to the base template; the single verb
// argument is the actor's display name. Lookup table rather than branching
// so adding a locale touches data only.
var baseMessages = map[Locale]map[string]string{
	LocalePT: {
		ActionCreated:         "Card criado por %s",
		ActionUpdated:         "Card atualizado por %s",
		ActionMoved:           "Card movido por %s",
		ActionCommentAdded:    "Comentário adicionado por %s",
		ActionCommentDeleted:  "Comentário removido por %s",
		ActionAssigneeAdded:   "Usuário atribuído por %s",
		ActionAssigneeRemoved: "Usuário removido por %s",
		ActionTagAdded:        "Tag adicionada por %s",
		ActionTagRemoved:      "Tag removida por %s",
	},
	LocaleEN: {
		ActionCreated:         "Card created by %s",
		ActionUpdated:         "Card updated by %s",
		ActionMoved:           "Card moved by %s",
		ActionCommentAdded:    "Comment added by %s",
		ActionCommentDeleted:  "Comment removed by %s",
		ActionAssigneeAdded:   "User assigned by %s",
		ActionAssigneeRemoved: "User unassigned by %s",
		ActionTagAdded:        "Tag added by %s",
		ActionTagRemoved:      "Tag removed by %s",
	},
}

var fallbackMessages = map[Locale]string{
	LocalePT: "Ação realizada por %s",
	LocaleEN: "Action performed by %s",
}

var systemLabels = map[Locale]string{
	LocalePT: "Sistema",
	LocaleEN: "System",
}

// changedFieldNames lists the UPDATED suffix labels in a fixed order:
// title, description, deadline.
var changedFieldNames = map[Locale][3]string{
	LocalePT: {"título", "descrição", "prazo"},
	LocaleEN: {"title", "description", "deadline"},
}

func systemLabel(loc Locale) string {
	if label, ok := systemLabels[loc]; ok {
		return label
	}
	return systemLabels[LocalePT]
}

// Message generates the human-readable audit message for one action.
func Message(loc Locale, action, actor string, d Details) string {
	templates, ok := baseMessages[loc]
	if !ok {
		loc = LocalePT
		templates = baseMessages[loc]
	}

	tmpl, ok := templates[action]
	if !ok {
		tmpl = fallbackMessages[loc]
	}
	msg := fmt.Sprintf(tmpl, actor)

	switch action {
	case ActionMoved:
		if d.FromColumn != "" && d.ToColumn != "" {
			if loc == LocaleEN {
				msg += fmt.Sprintf(" from '%s' to '%s'", d.FromColumn, d.ToColumn)
			} else {
				msg += fmt.Sprintf(" de '%s' para '%s'", d.FromColumn, d.ToColumn)
			}
		}
	case ActionUpdated:
		names := changedFieldNames[loc]
		var changed []string
		if d.TitleChanged {
			changed = append(changed, names[0])
		}
		if d.DescriptionChanged {
			changed = append(changed, names[1])
		}
		if d.DeadlineChanged {
			changed = append(changed, names[2])
		}
		if len(changed) > 0 {
			msg += fmt.Sprintf(" (%s)", strings.Join(changed, ", "))
		}
	case ActionAssigneeAdded, ActionAssigneeRemoved:
		if d.AssigneeName != "" {
			msg += ": " + d.AssigneeName
		}
	case ActionTagAdded, ActionTagRemoved:
		if d.TagName != "" {
			msg += ": " + d.TagName
		}
	}

	return msg
}

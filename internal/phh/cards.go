package phh

import "strings"

const unknownCard = "??"

// NormalizeCard converts a card as printed by a site ("Ah", "10h", "tD") to
// PHH notation ("Ah", "Th", "Td").
func NormalizeCard(card string) string {
	card = strings.TrimSpace(card)
	if card == "" || card == unknownCard {
		return card
	}
	if len(card) < 2 {
		return strings.ToUpper(card)
	}

	rank := strings.ToUpper(card[:len(card)-1])
	if rank == "10" {
		rank = "T"
	}
	return rank[:1] + strings.ToLower(card[len(card)-1:])
}

// JoinCards normalizes cards and concatenates them the way PHH actions list
// them, e.g. "AhKd". n unknown cards are written as "??" each.
func JoinCards(cards []string, n int) string {
	if len(cards) == 0 {
		return strings.Repeat(unknownCard, n)
	}
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(NormalizeCard(c))
	}
	return b.String()
}

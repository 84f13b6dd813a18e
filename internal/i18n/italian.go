package i18n

// Italian locale.
var Italian = &Locale{
	Code: "it",
	Name: "Italiano",
	Flag: "\U0001F1EE\U0001F1F9",

	MsgSelectLanguage:  "🌍 Select your language / Seleziona la lingua:",
	MsgLanguageChanged: "✅ Lingua impostata su Italiano",
	MsgStart: "👋 Benvenuto nel Negozio di Carte Collezionabili!\n\n" +
		"🃏 Sfoglia le nostre categorie per vedere le carte disponibili " +
		"e le loro condizioni tramite video.\n\n" +
		"Scegli un'opzione qui sotto ⬇️",
	MsgCategoriesMenu: "📂 Categorie\n\nScegli una categoria per sfogliare le carte:",
	MsgInfo: "🏢 Info Negozio\n\n" +
		"📍 Aperti Lun-Sab, 9:00 – 19:00\n" +
		"🃏 Carte Yu-Gi-Oh!, Pokémon, Magic e altro",
	MsgContacts:   "📞 Contatti\n\n📱 Tel: 0123-456789\n📧 Email: info@negozio.it",
	MsgAdminPanel: "🔐 Pannello Admin\n\nScegli la categoria dove operare:",

	MsgReviewsTitle:  "⭐ Recensioni Carte\n\n",
	RowCardReview:    "🏷 %s: ⭐ %.1f (%d recensioni)\n",
	RowOverallRating: "\n📊 Voto Complessivo: ⭐ %.1f (%d recensioni totali)",
	NoReviews:        "Nessuna recensione ancora ricevuta.",
	MsgStartReview:   "⭐ Recensione per %s\n\nScegli un voto da 1 a 5 stelle:",
	MsgWriteComment:  "⭐ Voto: %d stelle per %s\n\nScrivi un commento (opzionale, max 200 caratteri):",
	MsgReviewSaved:   "✅ Recensione salvata! Grazie per il feedback. ⭐",
	WarnAlreadyRated: "⚠️ Hai già lasciato una recensione per questa carta.",

	MsgWriteTitle:    "📝 Aggiungo in %s\n\nScrivi il NOME/TITOLO della carta:\n(massimo %d caratteri)",
	MsgTitleOK:       "✅ Titolo: %s\n\n🎥 Ora invia il VIDEO della carta.",
	MsgVideoOK:       "✅ Video ricevuto!\n\n📝 Scrivi ora la Descrizione e il Prezzo:\n\n(massimo %d caratteri)",
	MsgCardPublished: "✅ Carta pubblicata con successo!",
	MsgCardUpdated:   "✅ Carta aggiornata!",
	MsgCardDeleted:   "🗑 Carta eliminata!",
	MsgConfirmDelete: "🗑 Conferma Eliminazione\n\nVuoi eliminare la carta %s?\n\n⚠️ Questa azione è irreversibile.",
	MsgCategory:      "📂 %s",
	NoCards:          "\n\n📭 Nessuna carta disponibile al momento.",

	WarnSessionExpired:  "⏰ Sessione scaduta per inattività. Riprova dall'inizio.",
	WarnTextRequired:    "⚠️ Devi scrivere un testo per il titolo, non mandare file.",
	WarnTitleTooLong:    "⚠️ Titolo troppo lungo. Massimo %d caratteri.",
	WarnVideoRequired:   "⚠️ Devi inviare un video, non un messaggio di testo o altro file.",
	WarnVideoTooLarge:   "⚠️ Video troppo grande. Massimo %d MB.",
	WarnDescRequired:    "⚠️ Scrivi una descrizione testuale.",
	WarnDescTooLong:     "⚠️ Descrizione troppo lunga. Massimo %d caratteri.",
	WarnCommentTooLong:  "Commento troppo lungo. Max 200 caratteri.",
	WarnInvalidCategory: "⚠️ Categoria non valida.",
	WarnAccessDenied:    "⛔️ Accesso negato",
	WarnCardNotFound:    "Carta non trovata.",
	WarnSaveError:       "⚠️ Errore durante il salvataggio. Riprova.",
	WarnDeleteError:     "⚠️ Errore durante la cancellazione",
	WarnTooManyRequests: "⛔️ Usa solo i tasti del menu!",
	WarnReviewCooldown:  "⚠️ Hai raggiunto il limite di recensioni. Riprova tra %d minuti.",
}

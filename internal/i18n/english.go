package i18n

// English is the default locale.
var English = &Locale{
	Code: "en",
	Name: "English",
	Flag: "\U0001F1EC\U0001F1E7",

	MsgSelectLanguage:  "🌍 Select your language / Seleziona la lingua:",
	MsgLanguageChanged: "✅ Language set to English",
	MsgStart: "👋 Welcome to the Collectible Card Shop!\n\n" +
		"🃏 Browse our categories to see available cards " +
		"and their condition via video.\n\n" +
		"Choose an option below ⬇️",
	MsgCategoriesMenu: "📂 Categories\n\nChoose a category to browse cards:",
	MsgInfo: "🏢 Shop Info\n\n" +
		"📍 Open Mon-Sat, 9:00 AM – 7:00 PM\n" +
		"🃏 Yu-Gi-Oh!, Pokémon, Magic, and more",
	MsgContacts:   "📞 Contact Us\n\n📱 Phone: 0123-456789\n📧 Email: info@shop.com",
	MsgAdminPanel: "🔐 Admin Panel\n\nChoose the category to manage:",

	MsgReviewsTitle:  "⭐ Card Reviews\n\n",
	RowCardReview:    "🏷 %s: ⭐ %.1f (%d reviews)\n",
	RowOverallRating: "\n📊 Overall Rating: ⭐ %.1f (%d total reviews)",
	NoReviews:        "No reviews yet.",
	MsgStartReview:   "⭐ Review for %s\n\nChoose a rating from 1 to 5 stars:",
	MsgWriteComment:  "⭐ Rating: %d stars for %s\n\nWrite a comment (optional, max 200 characters):",
	MsgReviewSaved:   "✅ Review saved! Thank you for your feedback. ⭐",
	WarnAlreadyRated: "⚠️ You already left a review for this card.",

	MsgWriteTitle:    "📝 Adding to %s\n\nWrite the card NAME/TITLE:\n(max %d characters)",
	MsgTitleOK:       "✅ Title: %s\n\n🎥 Now send the VIDEO of the card.",
	MsgVideoOK:       "✅ Video received!\n\n📝 Now write the Description and Price:\n\n(max %d characters)",
	MsgCardPublished: "✅ Card published successfully!",
	MsgCardUpdated:   "✅ Card updated!",
	MsgCardDeleted:   "🗑 Card deleted!",
	MsgConfirmDelete: "🗑 Confirm Deletion\n\nDelete card %s?\n\n⚠️ This action is irreversible.",
	MsgCategory:      "📂 %s",
	NoCards:          "\n\n📭 No cards available at the moment.",

	WarnSessionExpired:  "⏰ Session expired due to inactivity. Please start over.",
	WarnTextRequired:    "⚠️ Please write a text for the title, don't send files.",
	WarnTitleTooLong:    "⚠️ Title too long. Maximum %d characters.",
	WarnVideoRequired:   "⚠️ Please send a video, not a text message or other file.",
	WarnVideoTooLarge:   "⚠️ Video too large. Maximum %d MB.",
	WarnDescRequired:    "⚠️ Please write a text description.",
	WarnDescTooLong:     "⚠️ Description too long. Maximum %d characters.",
	WarnCommentTooLong:  "Comment too long. Max 200 characters.",
	WarnInvalidCategory: "⚠️ Invalid category.",
	WarnAccessDenied:    "⛔️ Access denied",
	WarnCardNotFound:    "Card not found.",
	WarnSaveError:       "⚠️ Error during save. Please try again.",
	WarnDeleteError:     "⚠️ Error during deletion",
	WarnTooManyRequests: "⛔️ Use the menu buttons only!",
	WarnReviewCooldown:  "⚠️ You reached the review limit. Try again in %d minutes.",
}

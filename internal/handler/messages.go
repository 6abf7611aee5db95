package handler

const (
	menuText = "List of commands:\n" +
		"/goals - Show your goals\n" +
		"/create - Create a goal\n" +
		"/cancel - Cancel current action"

	unknownCommandText  = "Unknown command"
	genericErrorText    = "Something went wrong. Try again later."
	actionCancelledText = "Action cancelled."

	noGoalsText    = "You don't have any goals."
	goalLineFormat = "%d) %s, status: %s, priority: %s, due_date: %s"

	noCategoriesText   = "You don't have any categories to create a goal. Please create a category first."
	chooseCategoryText = "Choose category for goal:"
	categoryLineFormat = "%d) %s"
	categoryChosenText = "You chose category %d. Please, send the title for the goal."
	invalidIndexText   = "Invalid category index. Please choose a valid category."
	notValidIndexText  = "You sent not valid category index."
	goalCreatedFormat  = "Goal \"%s\" added!"
	goalNotCreatedText = "Something went wrong. Goal not created."
)

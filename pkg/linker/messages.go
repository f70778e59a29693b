package linker

import "fmt"

const (
	msgInvalidName     = "The IGN you entered is invalid. It should only contain letters, numbers and underscores, with 3-16 chars."
	msgNothingToUnlink = "You don't have a Minecraft account linked."
	msgNotSaved        = "\nWarning: this change could not be saved and may be lost when the bot restarts."
)

func msgLinking(name string) string {
	return fmt.Sprintf("Linking your account to `%s`...", name)
}

func msgUpdating(old, name string) string {
	return fmt.Sprintf("Your account is already linked to `%s`. Updating it to `%s`...", old, name)
}

func msgRelinking(name string) string {
	return fmt.Sprintf("Your account is already linked to `%s`. Adding it to the whitelist again...", name)
}

func msgLinked(name string) string {
	return fmt.Sprintf("You've linked your account to `%s` successfully!", name)
}

func msgAddFailed(name string) string {
	return fmt.Sprintf("Error adding `%s` to the whitelist. Verify if you typed the username correctly.", name)
}

func msgUnlinked(name string) string {
	return fmt.Sprintf("Your account has been unlinked from `%s`!", name)
}

func msgCheckLinked(label, name string) string {
	return fmt.Sprintf("%s is linked to the IGN `%s`.", label, name)
}

func msgCheckNotLinked(label string) string {
	return fmt.Sprintf("%s doesn't have a Minecraft account linked.", label)
}

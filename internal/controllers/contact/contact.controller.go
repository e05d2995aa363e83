package contactController

import (
	"context"

	"carelog/internal/logger"
	. "carelog/internal/models"
	"carelog/internal/repositories"
	"carelog/internal/utils"
)

type ContactController struct {
	userRepo    repositories.UserRepository
	contactRepo repositories.ContactRepository
	log         logger.Logger
}

func New(
	userRepo repositories.UserRepository,
	contactRepo repositories.ContactRepository,
) *ContactController {
	return &ContactController{
		userRepo:    userRepo,
		contactRepo: contactRepo,
		log:         logger.New("ContactController"),
	}
}

func (cc *ContactController) ListContacts(ctx context.Context, userID string) ([]Contact, error) {
	log := cc.log.Function("ListContacts")

	if err := utils.ValidateID("user id", userID); err != nil {
		return nil, log.Err("invalid user id", err, "userID", userID)
	}

	contacts, err := cc.contactRepo.ListContacts(ctx, userID)
	if err != nil {
		return nil, log.Err("failed to list contacts", err, "userID", userID)
	}

	return contacts, nil
}

func (cc *ContactController) AddContact(
	ctx context.Context,
	userID string,
	input ContactInput,
) (Contact, error) {
	log := cc.log.Function("AddContact")

	if err := utils.FirstError(utils.ValidateID("user id", userID), utils.ValidateContactInput(input)); err != nil {
		return Contact{}, log.Err("invalid contact", err, "userID", userID)
	}

	if err := cc.userRepo.EnsureUser(ctx, userID); err != nil {
		return Contact{}, log.Err("failed to ensure user", err, "userID", userID)
	}

	contact, err := cc.contactRepo.AddContact(ctx, userID, input)
	if err != nil {
		return Contact{}, log.Err("failed to add contact", err, "userID", userID)
	}

	return contact, nil
}

func (cc *ContactController) UpdateContact(
	ctx context.Context,
	userID, id string,
	input ContactInput,
) error {
	log := cc.log.Function("UpdateContact")

	if err := utils.FirstError(
		utils.ValidateID("user id", userID),
		utils.ValidateID("contact id", id),
		utils.ValidateContactInput(input),
	); err != nil {
		return log.Err("invalid contact", err, "userID", userID, "id", id)
	}

	if err := cc.contactRepo.UpdateContact(ctx, userID, id, input); err != nil {
		return log.Err("failed to update contact", err, "userID", userID, "id", id)
	}

	return nil
}

func (cc *ContactController) DeleteContact(ctx context.Context, userID, id string) error {
	log := cc.log.Function("DeleteContact")

	if err := utils.FirstError(utils.ValidateID("user id", userID), utils.ValidateID("contact id", id)); err != nil {
		return log.Err("invalid contact id", err, "userID", userID, "id", id)
	}

	if err := cc.contactRepo.DeleteContact(ctx, userID, id); err != nil {
		return log.Err("failed to delete contact", err, "userID", userID, "id", id)
	}

	return nil
}

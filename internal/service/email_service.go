package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/google/uuid"
)

// EmailService sends transactional email through AWS SES. When no sender
// address is configured the service runs disabled and logs instead of
// sending, so local development needs no AWS credentials.
type EmailService struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

// NewEmailService creates an email service. An empty fromEmail disables
// sending.
func NewEmailService(awsRegion, fromEmail, fromName, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("email service disabled: no sender address configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &EmailService{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

// SendFamilyInviteEmail sends a join link for a family to a prospective
// member
func (s *EmailService) SendFamilyInviteEmail(ctx context.Context, toEmail, inviterName string, familyID uuid.UUID) error {
	joinURL := fmt.Sprintf("%s/register?family_id=%s", s.appBaseURL, familyID)

	if !s.enabled {
		log.Printf("email service disabled, skipping invite to %s (join link: %s)", toEmail, joinURL)
		return nil
	}

	subject := fmt.Sprintf("%s invited you to join their family on Kidic", inviterName)
	htmlBody := fmt.Sprintf(`
		<html>
		<body style="font-family: sans-serif;">
			<h2>You've been invited!</h2>
			<p>%s has invited you to join their family on Kidic.</p>
			<p><a href="%s">Join the family</a></p>
			<p>If you weren't expecting this invitation you can ignore this email.</p>
		</body>
		</html>
	`, inviterName, joinURL)
	textBody := fmt.Sprintf("%s has invited you to join their family on Kidic.\n\nJoin here: %s\n", inviterName, joinURL)

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send invite email to %s: %w", toEmail, err)
	}

	log.Printf("sent family invite to %s", toEmail)
	return nil
}

package email

// Email templates in HTML format

// BaseTemplate is the base layout for all emails
const BaseTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body {
            margin: 0;
            padding: 0;
            font-family: Arial, Helvetica, sans-serif;
            background-color: #f4f4f4;
            color: #333333;
        }
        .container {
            max-width: 600px;
            margin: 0 auto;
            padding: 32px 16px;
        }
        .card {
            background: #ffffff;
            border-radius: 8px;
            padding: 24px;
            border: 1px solid #e0e0e0;
        }
        h2 {
            color: #1a1a1a;
            font-size: 22px;
            margin: 0 0 16px;
        }
        p {
            font-size: 15px;
            line-height: 1.6;
            margin: 0 0 12px;
        }
        .details {
            background-color: #f5f5f5;
            padding: 15px;
            border-radius: 5px;
            margin: 20px 0;
        }
        .changes {
            background-color: #e8f4f8;
            padding: 15px;
            border-radius: 5px;
            margin: 20px 0;
        }
        .note {
            background-color: #fff3cd;
            padding: 15px;
            border-radius: 5px;
            margin: 20px 0;
            border-left: 4px solid #ffc107;
        }
        .footer {
            text-align: center;
            color: #999999;
            font-size: 12px;
            margin-top: 24px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            {{.Content}}
        </div>
        <div class="footer">TAL-X room management</div>
    </div>
</body>
</html>
`

// RescheduleTemplate notifies the requester that their booking was moved
const RescheduleTemplate = `
<h2>Your booking has been rescheduled</h2>
<p>Dear employee,</p>
<p>Your booking has been modified by the room manager.</p>
<div class="details">
    <p><strong>Booking ID:</strong> {{.BookingID}}</p>
    <p><strong>Room:</strong> {{.RoomID}}</p>
    <p><strong>Start:</strong> {{.StartTime}}</p>
    <p><strong>End:</strong> {{.EndTime}}</p>
    <p><strong>Purpose:</strong> {{.Purpose}}</p>
    {{if .Attendees}}<p><strong>Attendees:</strong> {{.Attendees}}</p>{{end}}
</div>
{{if .Changes}}
<div class="changes">
    <p><strong>Changes:</strong></p>
    {{range .Changes}}<p>{{.}}</p>{{end}}
</div>
{{end}}
{{if .Reason}}<p><strong>Reason:</strong> {{.Reason}}</p>{{end}}
<div class="note">
    <p>If the new schedule does not work for you, please contact the room manager.</p>
</div>
`

// DecisionTemplate notifies the requester about an approval decision
const DecisionTemplate = `
<h2>Your booking status has been updated</h2>
<p>Dear employee,</p>
<p>Your booking has been <strong>{{.StatusText}}</strong>.</p>
<div class="details">
    <p><strong>Booking ID:</strong> {{.BookingID}}</p>
    <p><strong>Room:</strong> {{.RoomID}}</p>
    <p><strong>Start:</strong> {{.StartTime}}</p>
    <p><strong>End:</strong> {{.EndTime}}</p>
    <p><strong>Purpose:</strong> {{.Purpose}}</p>
</div>
{{if .Reason}}<p><strong>Reason:</strong> {{.Reason}}</p>{{end}}
`

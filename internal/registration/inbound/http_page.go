package inbound

const indexPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Registration mailer</title>
</head>
<body>
  <h1>Send registration emails</h1>
  <p>Upload a CSV file with <code>Name</code> and <code>Email</code> columns.</p>
  <form action="/send-emails" method="post" enctype="multipart/form-data">
    <input type="file" name="file" accept=".csv,text/csv" required>
    <button type="submit">Send</button>
  </form>
</body>
</html>
`
